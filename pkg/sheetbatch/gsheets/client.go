// Package gsheets sends compiled batches to the Google Sheets API.
package gsheets

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/ukaji3/sheetbatch-go/pkg/sheetbatch/ops"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// Client is a transport backed by the Sheets API v4.
type Client struct {
	service *sheets.Service
	logger  *slog.Logger
}

// New creates a client. Credentials and endpoint come from opts, see
// ServiceAccount.
func New(ctx context.Context, logger *slog.Logger, opts ...option.ClientOption) (*Client, error) {
	service, err := sheets.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Client{
		service: service,
		logger:  logger,
	}, nil
}

// BatchUpdate sends batch in a single batchUpdate call.
func (c *Client) BatchUpdate(ctx context.Context, spreadsheetID string, batch *ops.Batch) error {
	req, err := toRequest(batch)
	if err != nil {
		return err
	}
	if len(req.Requests) == 0 {
		return nil
	}

	resp, err := c.service.Spreadsheets.BatchUpdate(spreadsheetID, req).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("batch update: %w", err)
	}
	c.logger.Debug("batch update",
		"spreadsheet", spreadsheetID,
		"requests", len(req.Requests),
		"replies", len(resp.Replies),
	)
	return nil
}

// toRequest converts a batch to the client library's request type
// through its JSON form.
func toRequest(batch *ops.Batch) (*sheets.BatchUpdateSpreadsheetRequest, error) {
	body, err := json.Marshal(batch)
	if err != nil {
		return nil, fmt.Errorf("encode batch: %w", err)
	}
	var req sheets.BatchUpdateSpreadsheetRequest
	if err := json.Unmarshal(body, &req); err != nil {
		return nil, fmt.Errorf("decode batch: %w", err)
	}
	return &req, nil
}

// ClearSheets empties the values of the listed sheets, then unmerges,
// unformats and unfreezes them in one batch. Ids not present in the
// spreadsheet are ignored.
func (c *Client) ClearSheets(ctx context.Context, spreadsheetID string, sheetIDs []int64) error {
	props, err := c.properties(ctx, spreadsheetID)
	if err != nil {
		return err
	}

	var (
		titles   []string
		requests []ops.Operation
	)
	for _, p := range props {
		if !slices.Contains(sheetIDs, p.SheetId) {
			continue
		}
		titles = append(titles, quoteTitle(p.Title))
		whole := ops.GridRange{SheetID: p.SheetId}
		requests = append(requests,
			ops.UnmergeCells{Range: whole},
			ops.ClearFormat{Range: whole},
			ops.Unfreeze{SheetID: p.SheetId},
		)
	}
	if len(titles) == 0 {
		return nil
	}

	_, err = c.service.Spreadsheets.Values.BatchClear(spreadsheetID, &sheets.BatchClearValuesRequest{
		Ranges: titles,
	}).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("clear values: %w", err)
	}
	c.logger.Debug("clear sheets", "spreadsheet", spreadsheetID, "sheets", titles)

	return c.BatchUpdate(ctx, spreadsheetID, ops.NewBatch(requests))
}

// ReadColumn reads column of the named sheet from the 1-based row
// fromRow down. Empty cells in between are returned as "".
func (c *Client) ReadColumn(ctx context.Context, spreadsheetID, sheet, column string, fromRow int) ([]string, error) {
	if fromRow < 1 {
		return nil, fmt.Errorf("invalid start row %d", fromRow)
	}
	readRange := fmt.Sprintf("%s!%s%d:%s", quoteTitle(sheet), column, fromRow, column)

	resp, err := c.service.Spreadsheets.Values.Get(spreadsheetID, readRange).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", readRange, err)
	}

	values := make([]string, len(resp.Values))
	for i, row := range resp.Values {
		if len(row) > 0 {
			values[i] = fmt.Sprint(row[0])
		}
	}
	return values, nil
}

// SheetIDs maps sheet titles to sheet ids.
func (c *Client) SheetIDs(ctx context.Context, spreadsheetID string) (map[string]int64, error) {
	props, err := c.properties(ctx, spreadsheetID)
	if err != nil {
		return nil, err
	}
	ids := make(map[string]int64, len(props))
	for _, p := range props {
		ids[p.Title] = p.SheetId
	}
	return ids, nil
}

func (c *Client) properties(ctx context.Context, spreadsheetID string) ([]*sheets.SheetProperties, error) {
	resp, err := c.service.Spreadsheets.Get(spreadsheetID).
		Fields("sheets.properties(sheetId,title)").
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("get spreadsheet: %w", err)
	}
	var props []*sheets.SheetProperties
	for _, s := range resp.Sheets {
		if s.Properties != nil {
			props = append(props, s.Properties)
		}
	}
	return props, nil
}

// quoteTitle quotes a sheet title for use in A1 notation.
func quoteTitle(title string) string {
	return "'" + strings.ReplaceAll(title, "'", "''") + "'"
}
