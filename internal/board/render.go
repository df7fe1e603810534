package board

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/campusboard/busboard/internal/domain"
)

// Render writes b as two aligned tables, Upcoming then Completed.
func Render(w io.Writer, b domain.Board) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	fmt.Fprintf(tw, "%s board as of %s\n\n", b.Location, b.Now.Format("Mon 02 Jan 15:04"))

	fmt.Fprintln(tw, "UPCOMING")
	if len(b.Upcoming) == 0 {
		if b.AllCompleted {
			fmt.Fprintln(tw, "All buses for today have departed.")
		} else {
			fmt.Fprintln(tw, "No upcoming buses.")
		}
	} else {
		writeRows(tw, b.Upcoming, b.Now)
	}

	fmt.Fprintln(tw)
	fmt.Fprintln(tw, "COMPLETED")
	if len(b.Completed) == 0 {
		fmt.Fprintln(tw, "None yet.")
	} else {
		writeRows(tw, b.Completed, b.Now)
	}

	return tw.Flush()
}

func writeRows(w io.Writer, entries []domain.ScheduleEntry, now time.Time) {
	fmt.Fprintln(w, "TIME\tFROM\tTO\tSTATUS\tFARE")
	for _, e := range entries {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			departureLabel(e.DepartureTime, now),
			e.Origin.Name(),
			e.Destination.Name(),
			e.Status,
			fareLabel(e.IsPaid),
		)
	}
}

// departureLabel shows only the clock time for today's buses.
func departureLabel(dep, now time.Time) string {
	dep = dep.In(now.Location())
	if domain.StartOfDay(dep).Equal(domain.StartOfDay(now)) {
		return dep.Format("15:04")
	}
	return dep.Format("02 Jan 15:04")
}

func fareLabel(paid bool) string {
	if paid {
		return "Paid"
	}
	return "Free"
}
