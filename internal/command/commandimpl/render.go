package commandimpl

import (
	"fmt"
	"io"
	"strings"

	"github.com/orgball2608/photoshare-client/internal/comments"
	"github.com/orgball2608/photoshare-client/internal/detail"
	"github.com/orgball2608/photoshare-client/pkg/formatter"
)

const placeholder = "Loading..."

// renderPage draws the detail page. Without a photo it draws only the placeholder.
func renderPage(w io.Writer, page *detail.Page) {
	if page == nil {
		return
	}
	photo := page.Photo()
	if photo == nil {
		fmt.Fprintln(w, placeholder)
		return
	}

	name, avatar := placeholder, ""
	if photo.User != nil {
		avatar = photo.User.AvatarURL
		if photo.User.DisplayName != "" {
			name = photo.User.DisplayName
		}
	}
	if avatar != "" {
		fmt.Fprintf(w, "[%s] ", avatar)
	}
	fmt.Fprintln(w, name)

	fmt.Fprintf(w, "Camera: %s\n", photo.CameraModel)
	fmt.Fprintf(w, "ISO: %s\n", formatter.FormatNumber(photo.ISO))
	fmt.Fprintf(w, "F-value: %s\n", formatter.FormatAperture(photo.FValue))
	fmt.Fprintf(w, "Shutter speed: %s\n", photo.ShutterSpeed)
	fmt.Fprintf(w, "Taken: %s\n", formatter.FormatDate(photo.TakenAt))

	frame := page.Frame()
	border := "+" + strings.Repeat("-", max(frame.Columns-2, 0)) + "+"
	fmt.Fprintln(w, border)
	fmt.Fprintf(w, "| %s (%.0f%% x %dpx)\n", photo.FileURL, frame.WidthPercent, frame.Height)
	fmt.Fprintln(w, border)

	fmt.Fprintf(w, "Posted: %s\n", formatter.FormatDate(photo.CreatedAt))

	fmt.Fprintln(w, "Comments:")
	for _, e := range page.Feed.Entries() {
		line := fmt.Sprintf("%s: %s", e.Comment.AuthorName(), e.Comment.Content)
		if e.Status == comments.Pending {
			line += " (sending)"
		}
		for _, l := range formatter.Wrap(line, frame.TextWidth-2) {
			fmt.Fprintf(w, "  %s\n", l)
		}
	}
}
