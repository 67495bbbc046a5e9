// Package console renders a chat session as plain lines on a terminal.
package console

import (
	"fmt"
	"io"
	"iter"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/vovakirdan/wirechat-client/internal/core"
)

// View writes session output to a terminal. It is driven from the session
// loop and never calls back into the session.
type View struct {
	out    io.Writer
	rooms  []string
	styles styles
}

type styles struct {
	header  lipgloss.Style
	active  lipgloss.Style
	muted   lipgloss.Style
	byKind  map[core.MessageKind]lipgloss.Style
	senders lipgloss.Style
}

// New constructs a view writing to out. rooms is the list offered by /rooms.
func New(out io.Writer, rooms []string) *View {
	r := lipgloss.NewRenderer(out)
	return &View{
		out:   out,
		rooms: rooms,
		styles: styles{
			header:  r.NewStyle().Bold(true).Foreground(lipgloss.Color("#01cdfe")),
			active:  r.NewStyle().Bold(true).Foreground(lipgloss.Color("#05ffa1")),
			muted:   r.NewStyle().Foreground(lipgloss.Color("#9ca3d8")),
			senders: r.NewStyle().Bold(true),
			byKind: map[core.MessageKind]lipgloss.Style{
				core.KindOwn:     r.NewStyle().Foreground(lipgloss.Color("#05ffa1")),
				core.KindOther:   r.NewStyle().Foreground(lipgloss.Color("#f3f3ff")),
				core.KindPrivate: r.NewStyle().Foreground(lipgloss.Color("#ff71ce")).Italic(true),
				core.KindSystem:  r.NewStyle().Foreground(lipgloss.Color("#9ca3d8")),
			},
		},
	}
}

// RoomChanged prints a header for room followed by its replayed history.
func (v *View) RoomChanged(room string, history iter.Seq[core.Message]) {
	fmt.Fprintln(v.out, v.styles.header.Render("── #"+room+" ──"))
	for msg := range history {
		v.writeMessage(msg)
	}
}

// MessageAdded renders one new message.
func (v *View) MessageAdded(_ string, msg core.Message) {
	v.writeMessage(msg)
}

// PresenceChanged renders the active-user list.
func (v *View) PresenceChanged(snapshot core.PresenceSnapshot) {
	names := make([]string, 0, len(snapshot.Users))
	for _, u := range snapshot.Users {
		if snapshot.IsSelf(u) {
			u += " (you)"
		}
		names = append(names, u)
	}
	fmt.Fprintln(v.out, v.styles.muted.Render("online: "+strings.Join(names, ", ")))
}

// Rooms renders the known room list, highlighting current.
func (v *View) Rooms(current string) {
	for _, room := range v.rooms {
		if room == current {
			fmt.Fprintln(v.out, v.styles.active.Render("* "+room))
			continue
		}
		fmt.Fprintln(v.out, "  "+room)
	}
}

// Notice renders a local hint that is not part of any room's history.
func (v *View) Notice(text string) {
	fmt.Fprintln(v.out, v.styles.muted.Render(text))
}

func (v *View) writeMessage(msg core.Message) {
	style, ok := v.styles.byKind[msg.Kind]
	if !ok {
		style = v.styles.muted
	}
	fmt.Fprintln(v.out, style.Render(v.styles.senders.Render(msg.Sender)+": "+msg.Body))
}
