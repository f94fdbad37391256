// Command sheetinfo inspects spreadsheet files: it lists a workbook's
// sheets with their type, visibility, and used range, and can dump a
// sheet's cells as CSV.
//
//	sheetinfo book.xlsb
//	sheetinfo -csv -sheet Sheet1 book.xlsb > sheet1.csv
//	sheetinfo -csv -i 0 -charset iso-8859-2 book.xlsb
package main

import (
	"context"
	"encoding/csv"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/UNO-SOFT/zlog/v2"
	"github.com/peterbourgon/ff/v3/ffcli"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/transform"

	"github.com/skiftan/anysheet"
	"github.com/skiftan/anysheet/grid"
	"github.com/skiftan/anysheet/value"

	_ "github.com/skiftan/anysheet/xlsb"
)

var verbose zlog.VerboseVar
var logger = zlog.NewLogger(zlog.MaybeConsoleHandler(&verbose, os.Stderr)).SLog()

func main() {
	if err := Main(); err != nil {
		slog.Error("MAIN", "error", err)
		os.Exit(1)
	}
}

func Main() error {
	fs := flag.NewFlagSet("sheetinfo", flag.ContinueOnError)
	fs.Var(&verbose, "v", "logging verbosity")
	flagSheet := fs.String("sheet", "", "sheet name (default: first sheet)")
	flagIndex := fs.Int("i", -1, "sheet index, overrides -sheet")
	flagCSV := fs.Bool("csv", false, "dump the sheet's cells as CSV instead of listing sheets")
	flagEnc := fs.String("charset", "utf-8", "csv output charset name")

	app := ffcli.Command{Name: "sheetinfo", ShortUsage: "sheetinfo [flags] file",
		FlagSet: fs,
		Exec: func(ctx context.Context, args []string) error {
			if len(args) != 1 {
				return flag.ErrHelp
			}
			wb, err := anysheet.Open(args[0])
			if err != nil {
				return err
			}
			defer wb.Close()
			slog.Debug("opened", "file", args[0], "format", wb.Format())

			if !*flagCSV {
				return listSheets(os.Stdout, wb)
			}
			rng, err := pickSheet(wb, *flagSheet, *flagIndex)
			if err != nil {
				return err
			}
			return dumpCSV(os.Stdout, rng, *flagEnc)
		},
	}

	if err := app.Parse(os.Args[1:]); err != nil {
		return err
	}
	ctx, cancel := signal.NotifyContext(context.Background(),
		os.Interrupt, syscall.SIGTERM)
	defer cancel()
	return app.Run(ctx)
}

func listSheets(w io.Writer, wb *anysheet.AutoWorkbook) error {
	fmt.Fprintf(w, "format: %s\n", wb.Format())
	for i, sheet := range wb.Metadata().Sheets() {
		rng, err := wb.WorksheetRangeAt(i)
		extent := "?"
		switch {
		case err != nil:
			slog.Warn("read sheet", "index", i, "name", sheet.Name, "error", err)
		case rng.IsEmpty():
			extent = "empty"
		default:
			dims, _ := rng.Dims()
			extent = fmt.Sprintf("%s, %d cells", dims, rng.CellCount())
		}
		fmt.Fprintf(w, "%3d  %-31s  %-11s  %-10s  %s\n",
			i, sheet.Name, sheet.Type, sheet.Visibility, extent)
	}
	return nil
}

func pickSheet(wb *anysheet.AutoWorkbook, name string, index int) (*grid.Range[value.Data], error) {
	if index >= 0 {
		return wb.WorksheetRangeAt(index)
	}
	if name == "" {
		return wb.WorksheetRangeAt(0)
	}
	return wb.WorksheetRange(name)
}

// dumpCSV writes the range row by row, one record per grid row over the
// full column span.  Cell positions outside the recorded set come out as
// empty fields, same as recorded-empty cells.
func dumpCSV(w io.Writer, rng *grid.Range[value.Data], encName string) error {
	enc, err := htmlindex.Get(encName)
	if err != nil {
		return fmt.Errorf("charset %q: %w", encName, err)
	}
	tw := transform.NewWriter(w, enc.NewEncoder())
	cw := csv.NewWriter(tw)

	if dims, ok := rng.Dims(); ok {
		record := make([]string, dims.Width())
		for row := dims.Start.Row; ; row++ {
			for i := range record {
				record[i] = ""
			}
			for col := dims.Start.Col; ; col++ {
				if v, ok := rng.Get(row, col); ok {
					record[col-dims.Start.Col] = cellString(v)
				}
				if col == dims.End.Col {
					break
				}
			}
			if err := cw.Write(record); err != nil {
				return err
			}
			if row == dims.End.Row {
				break
			}
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return err
	}
	return tw.Close()
}

// cellString renders a cell for CSV output.  Dates render as RFC 3339
// timestamps, durations much like Go durations, and empty cells as the
// empty field.
func cellString(d value.Data) string {
	if s, ok := d.AsString(); ok {
		return s
	}
	switch {
	case d.IsEmpty():
		return ""
	case d.IsInt():
		v, _ := d.GetInt()
		return strconv.FormatInt(v, 10)
	case d.IsFloat():
		v, _ := d.GetFloat()
		return strconv.FormatFloat(v, 'g', -1, 64)
	case d.IsBool():
		v, _ := d.GetBool()
		if v {
			return "TRUE"
		}
		return "FALSE"
	case d.IsDateTime():
		dt, _ := d.GetDateTime()
		if dt.IsDuration() {
			if dur, err := dt.AsDuration(); err == nil {
				return dur.String()
			}
		} else if tm, err := dt.AsTime(); err == nil {
			return tm.Format("2006-01-02T15:04:05")
		}
		return dt.String()
	case d.IsError():
		e, _ := d.GetError()
		return e.String()
	}
	return d.String()
}
