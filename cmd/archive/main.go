package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"sng-lab/repositories"
	"strconv"

	"github.com/dgraph-io/badger/v4"
	"github.com/mama165/sdk-go/logs"
	"github.com/olekukonko/tablewriter"
	"github.com/samber/lo"
)

// Lists ended sessions, most recent first.
func main() {
	dbPath := flag.String("db", "./data/sng", "Path to badger DB")
	pageSize := flag.Int("page", 20, "Sessions per page")
	pages := flag.Int("pages", 1, "Number of pages to print, 0 for all")
	flag.Parse()

	db, err := badger.Open(badger.DefaultOptions(*dbPath).
		WithReadOnly(true).
		WithLogger(nil).
		WithBypassLockGuard(true))
	if err != nil {
		log.Fatal("Error while opening Badger: ", err)
	}
	defer db.Close()

	archive := repositories.NewSessionArchive(db, logs.GetLoggerFromString("WARN"), lo.ToPtr(*pageSize))

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Ended", "ID", "Channel", "Starter", "Phase", "Players", "Trigger", "Artifacts", "Failed", "Swept"})
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(true)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetTablePadding("\t")

	var cursor *string
	for page := 0; *pages == 0 || page < *pages; page++ {
		sessions, next, err := archive.List(cursor)
		if err != nil {
			log.Fatal(err)
		}
		for _, s := range sessions {
			table.Append([]string{
				s.EndedAt.Format("2006-01-02 15:04:05"),
				s.DisplayID,
				s.Channel,
				s.Starter,
				s.Phase,
				fmt.Sprintf("%d/%d", s.Players, s.Capacity),
				s.Trigger,
				strconv.Itoa(s.Artifacts),
				strconv.Itoa(s.Failed),
				strconv.Itoa(s.Swept),
			})
		}
		if next == nil || len(sessions) < *pageSize {
			break
		}
		cursor = next
	}

	table.Render()
}
