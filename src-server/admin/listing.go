package admin

import (
	"bytes"
	"context"
	"encoding/csv"
	"eventsman/src-server/catalog"
	"eventsman/src-server/store"
	"fmt"
	"time"

	"github.com/uptrace/bun"
)

// CSV column order is fixed; exports are consumed by spreadsheets downstream.
var csvHeader = []string{"Name", "Email", "Event Date", "College", "Department", "Submission Date"}

const (
	ExportContentType = "text/csv"
	ExportDisposition = `attachment; filename="registrations.csv"`
)

// One render of the listing view: the cascading date -> event filter options
// (over ALL events, no registration-window restriction) and the filtered
// rows with their total.
type Page struct {
	Dates  []string
	Events []catalog.EventOption
	Rows   []store.Row
	Total  int
}

func Listing(ctx context.Context, db bun.IDB, regStore *store.RegistrationStore, filterDate string, filterEventID string) (*Page, error) {
	eventCatalog := catalog.NewCatalog(db)

	page := new(Page)
	var err error
	if page.Dates, err = eventCatalog.DistinctEventDates(ctx); err != nil {
		return nil, fmt.Errorf("Listing: %w", err)
	}
	if filterDate != "" {
		if page.Events, err = eventCatalog.EventsOnDate(ctx, filterDate); err != nil {
			return nil, fmt.Errorf("Listing: %w", err)
		}
	}

	if page.Rows, err = regStore.ListRegistrations(ctx, filterDate, filterEventID); err != nil {
		return nil, err
	}
	page.Total = len(page.Rows)

	return page, nil
}

// An HTTP-style download: headers plus body.
type ExportResponse struct {
	ContentType        string
	ContentDisposition string
	Body               []byte
}

// ExportCSV renders the rows: one header line, one record per registration.
// Fields are quoted per RFC 4180 when they contain delimiters, unlike the
// naive comma join of older exports.
func ExportCSV(rows []store.Row, loc *time.Location) (*ExportResponse, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	if err := writer.Write(csvHeader); err != nil {
		return nil, fmt.Errorf("ExportCSV: %w", err)
	}
	for _, row := range rows {
		if err := writer.Write([]string{
			row.FullName,
			row.Email,
			row.EventDate,
			row.College,
			row.Department,
			FormatSubmissionDate(row.Created, loc),
		}); err != nil {
			return nil, fmt.Errorf("ExportCSV: %w", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("ExportCSV: %w", err)
	}

	return &ExportResponse{
		ContentType:        ExportContentType,
		ContentDisposition: ExportDisposition,
		Body:               buf.Bytes(),
	}, nil
}

func FormatSubmissionDate(created int64, loc *time.Location) string {
	return time.Unix(created, 0).In(loc).Format("2006-01-02 15:04:05")
}
