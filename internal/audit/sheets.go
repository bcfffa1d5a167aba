package audit

import (
	"context"
	"fmt"

	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// SheetsAppender appends audit rows to a Google spreadsheet using a
// service-account credential.
type SheetsAppender struct {
	svc           *sheets.Service
	spreadsheetID string
	writeRange    string
}

// NewSheetsAppender builds the Sheets client from service-account JSON.
func NewSheetsAppender(ctx context.Context, serviceKeyJSON []byte, spreadsheetID, writeRange string) (*SheetsAppender, error) {
	svc, err := sheets.NewService(ctx,
		option.WithCredentialsJSON(serviceKeyJSON),
		option.WithScopes(sheets.SpreadsheetsScope),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}
	if writeRange == "" {
		writeRange = "A:D"
	}
	return &SheetsAppender{
		svc:           svc,
		spreadsheetID: spreadsheetID,
		writeRange:    writeRange,
	}, nil
}

// Append writes one row: timestamp, event, key, detail summary.
func (a *SheetsAppender) Append(ctx context.Context, rec Record) error {
	detail := ""
	for k, v := range rec.Detail {
		if detail != "" {
			detail += " "
		}
		detail += k + "=" + v
	}

	vr := &sheets.ValueRange{
		Values: [][]interface{}{
			{rec.Time.Format("2006-01-02 15:04:05"), rec.Event, rec.Key, detail},
		},
	}
	_, err := a.svc.Spreadsheets.Values.
		Append(a.spreadsheetID, a.writeRange, vr).
		ValueInputOption("RAW").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("sheets append: %w", err)
	}
	return nil
}
