package output

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/sharespace/backend/internal/cli/api"
)

// JSON prints v as indented JSON to stdout.
func JSON(v interface{}) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}

// SpaceTable prints a slice of spaces as a human-readable table.
func SpaceTable(spaces []api.Space) {
	if len(spaces) == 0 {
		fmt.Println("No spaces found.")
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tSLUG\tDATE\tVISIBILITY\tVIEWS\tUPLOADS")

	for _, s := range spaces {
		visibility := "private"
		if s.IsPublic {
			visibility = "public"
		}
		date := s.Date
		if date == "" {
			date = "-"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%d\n", s.Name, s.Slug, date, visibility, s.Views, s.Uploads)
	}
	w.Flush()
}

// SpaceDetail prints a single space's details.
func SpaceDetail(s api.Space) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "Name:\t%s\n", s.Name)
	fmt.Fprintf(w, "Slug:\t%s\n", s.Slug)
	fmt.Fprintf(w, "ID:\t%s\n", s.ID)
	if s.Date != "" {
		fmt.Fprintf(w, "Date:\t%s\n", s.Date)
	}
	if s.Description != "" {
		fmt.Fprintf(w, "Description:\t%s\n", s.Description)
	}
	visibility := "private"
	if s.IsPublic {
		visibility = "public"
	}
	fmt.Fprintf(w, "Visibility:\t%s\n", visibility)
	fmt.Fprintf(w, "Views:\t%d\n", s.Views)
	fmt.Fprintf(w, "Uploads:\t%d\n", s.Uploads)
	if s.Owner != nil {
		fmt.Fprintf(w, "Owner:\t%s\n", s.Owner.Email)
	}
	fmt.Fprintf(w, "Created:\t%s\n", s.CreatedAt.Format(time.RFC3339))
	w.Flush()
}

// PhotoTable prints a slice of photos.
func PhotoTable(photos []api.Photo) {
	if len(photos) == 0 {
		fmt.Println("No photos found.")
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tFILENAME\tSTATUS\tUPLOADED")

	for _, p := range photos {
		status := "pending"
		if p.Approved {
			status = "approved"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", p.ID, p.Filename, status, RelativeTime(p.CreatedAt))
	}
	w.Flush()
}

// UserInfo prints user details.
func UserInfo(u api.User) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "Email:\t%s\n", u.Email)
	fmt.Fprintf(w, "Name:\t%s\n", u.DisplayName)
	fmt.Fprintf(w, "Role:\t%s\n", u.Role)
	fmt.Fprintf(w, "ID:\t%s\n", u.ID)
	w.Flush()
}

// FormatSize converts bytes to a human-readable string.
func FormatSize(b int64) string {
	const unit = 1024
	if b < unit {
		return fmt.Sprintf("%d B", b)
	}
	div, exp := int64(unit), 0
	for n := b / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(b)/float64(div), "KMGTPE"[exp])
}

// RelativeTime formats a timestamp relative to now (e.g. "2h ago", "3d ago").
func RelativeTime(t time.Time) string {
	d := time.Since(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	case d < 30*24*time.Hour:
		return fmt.Sprintf("%dd ago", int(d.Hours()/24))
	default:
		return t.Format("2006-01-02")
	}
}
