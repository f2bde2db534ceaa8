package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/ukaji3/sheetbatch-go/pkg/sheetbatch"
	"github.com/ukaji3/sheetbatch-go/pkg/sheetbatch/gsheets"
	"github.com/ukaji3/sheetbatch-go/pkg/sheetbatch/layout"
	"github.com/ukaji3/sheetbatch-go/pkg/sheetbatch/output"
	"github.com/ukaji3/sheetbatch-go/pkg/sheetbatch/xlsx"
)

var (
	outputPath    string
	pretty        bool
	sheetsDir     string
	noClear       bool
	spreadsheetID string
	credentials   string
	proxyAddr     string
	xlsxPath      string
	sheetName     string
	column        string
	fromRow       int
)

func newCompileCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compile [layout.cue]",
		Short: "Print the batch update request body of a layout",
		Args:  cobra.ExactArgs(1),
		RunE:  runCompile,
	}
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output file path (default: stdout)")
	cmd.Flags().BoolVar(&pretty, "pretty", false, "Pretty-print JSON output")
	cmd.Flags().StringVar(&sheetsDir, "sheets-dir", "", "Directory for per-sheet output files")
	return cmd
}

func newRenderCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "render [layout.cue]",
		Short: "Apply a layout to a local xlsx workbook",
		Args:  cobra.ExactArgs(1),
		RunE:  runRender,
	}
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Workbook path; an existing workbook is updated in place")
	cmd.Flags().BoolVar(&noClear, "no-clear", false, "Keep the existing content of the managed sheets")
	cobra.CheckErr(cmd.MarkFlagRequired("output"))
	return cmd
}

func newPushCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "push [layout.cue]",
		Short: "Apply a layout to a Google Sheets spreadsheet",
		Args:  cobra.ExactArgs(1),
		RunE:  runPush,
	}
	remoteFlags(cmd)
	cmd.Flags().BoolVar(&noClear, "no-clear", false, "Keep the existing content of the managed sheets")
	return cmd
}

func newReadCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "read",
		Short: "Print the values of one column, one per line",
		Args:  cobra.NoArgs,
		RunE:  runRead,
	}
	remoteFlags(cmd)
	cmd.Flags().StringVar(&xlsxPath, "xlsx", "", "Read from a local workbook instead of Google Sheets")
	cmd.Flags().StringVar(&sheetName, "sheet", "", "Sheet title")
	cmd.Flags().StringVar(&column, "column", "A", "Column letter")
	cmd.Flags().IntVar(&fromRow, "from-row", 2, "First 1-based row to read")
	cobra.CheckErr(cmd.MarkFlagRequired("sheet"))
	return cmd
}

func newLookupCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lookup [sheet title]",
		Short: "Print the id of the sheet with the given title",
		Args:  cobra.ExactArgs(1),
		RunE:  runLookup,
	}
	remoteFlags(cmd)
	return cmd
}

func remoteFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&spreadsheetID, "spreadsheet", "", "Spreadsheet id (default: from the layout)")
	cmd.Flags().StringVar(&credentials, "credentials", "", "Service account key file (default: application default credentials)")
	cmd.Flags().StringVar(&proxyAddr, "proxy", "", "Proxy address, e.g. socks5://127.0.0.1:1080 (default: from the environment)")
}

func runCompile(cmd *cobra.Command, args []string) error {
	f, s, err := loadLayout(args[0])
	if err != nil {
		return err
	}

	batch, err := s.Compile()
	if err != nil {
		return fmt.Errorf("compile failed: %w", err)
	}
	jsonData, err := output.ToJSON(batch, pretty)
	if err != nil {
		return fmt.Errorf("serialization failed: %w", err)
	}
	logger.Info("compiled", "layout", args[0], "sheets", len(f.Sheets), "requests", batch.Len())

	// Write output
	if outputPath != "" {
		if err := os.WriteFile(outputPath, jsonData, 0644); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	} else if sheetsDir == "" {
		fmt.Fprintln(cmd.OutOrStdout(), string(jsonData))
	}

	// Write per-sheet files
	if sheetsDir != "" {
		if err := writeSheetFiles(s, sheetsDir); err != nil {
			return fmt.Errorf("failed to write sheet files: %w", err)
		}
	}
	return nil
}

func writeSheetFiles(s *sheetbatch.Spreadsheet, dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	for _, sheet := range s.Sheets() {
		jsonData, err := output.SheetToJSON(sheet, pretty)
		if err != nil {
			return err
		}

		name := sheet.Name()
		if name == "" {
			name = fmt.Sprintf("sheet%d", sheet.ID())
		}
		filename := filepath.Join(dir, name+".json")
		if err := os.WriteFile(filename, jsonData, 0644); err != nil {
			return err
		}
	}
	return nil
}

func runRender(cmd *cobra.Command, args []string) error {
	_, s, err := loadLayout(args[0])
	if err != nil {
		return err
	}

	var wb *xlsx.Workbook
	if _, err := os.Stat(outputPath); err == nil {
		wb, err = xlsx.Open(outputPath, logger)
		if err != nil {
			return fmt.Errorf("failed to open workbook: %w", err)
		}
	} else if errors.Is(err, os.ErrNotExist) {
		wb = xlsx.NewWorkbook(logger)
	} else {
		return err
	}
	defer wb.Close()

	if err := wb.BindSheets(s.Sheets()); err != nil {
		return err
	}
	if err := s.Write(cmd.Context(), wb); err != nil {
		return err
	}
	if err := wb.SaveAs(outputPath); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	logger.Info("rendered", "layout", args[0], "output", outputPath)
	return nil
}

func runPush(cmd *cobra.Command, args []string) error {
	f, s, err := loadLayout(args[0])
	if err != nil {
		return err
	}
	if s.ID() == "" {
		return errors.New("no spreadsheet id: set --spreadsheet or the layout's spreadsheet field")
	}

	client, err := connect(cmd, f)
	if err != nil {
		return err
	}
	return s.Write(cmd.Context(), client)
}

func runRead(cmd *cobra.Command, args []string) error {
	s := sheetbatch.New(spreadsheetID,
		sheetbatch.WithLogger(logger),
		sheetbatch.WithFirstDataRow(fromRow),
	)

	var t sheetbatch.Transport
	if xlsxPath != "" {
		wb, err := xlsx.Open(xlsxPath, logger)
		if err != nil {
			return fmt.Errorf("failed to open workbook: %w", err)
		}
		defer wb.Close()
		t = wb
	} else {
		if spreadsheetID == "" {
			return errors.New("set --xlsx or --spreadsheet")
		}
		client, err := connect(cmd, nil)
		if err != nil {
			return err
		}
		t = client
	}

	values, err := s.ReadList(cmd.Context(), t, sheetName, column)
	if err != nil {
		return err
	}
	for _, v := range values {
		fmt.Fprintln(cmd.OutOrStdout(), v)
	}
	return nil
}

func runLookup(cmd *cobra.Command, args []string) error {
	if spreadsheetID == "" {
		return errors.New("set --spreadsheet")
	}
	client, err := connect(cmd, nil)
	if err != nil {
		return err
	}
	id, err := sheetbatch.New(spreadsheetID, sheetbatch.WithLogger(logger)).
		SheetIDByName(cmd.Context(), client, args[0])
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), id)
	return nil
}

// loadLayout reads the layout file and builds its spreadsheet model.
// --spreadsheet overrides the layout's spreadsheet id.
func loadLayout(path string) (*layout.File, *sheetbatch.Spreadsheet, error) {
	f, err := layout.Load(path)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid layout: %w", err)
	}
	if spreadsheetID != "" {
		f.Spreadsheet = spreadsheetID
	}
	s, err := f.Build(spreadsheetOptions(sheetbatch.WithLogger(logger))...)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid layout: %w", err)
	}
	return f, s, nil
}

func spreadsheetOptions(opts ...sheetbatch.Option) []sheetbatch.Option {
	if noClear {
		opts = append(opts, sheetbatch.WithClearBeforeWrite(false))
	}
	return opts
}

// connect opens a Sheets client. Flags override the layout's
// credentials and proxy.
func connect(cmd *cobra.Command, f *layout.File) (*gsheets.Client, error) {
	creds, proxy := credentials, proxyAddr
	if f != nil {
		if creds == "" {
			creds = f.Credentials
		}
		if proxy == "" {
			proxy = f.Proxy
		}
	}
	client, err := gsheets.Connect(cmd.Context(), logger, creds, proxy)
	if err != nil {
		return nil, fmt.Errorf("failed to connect: %w", err)
	}
	return client, nil
}
