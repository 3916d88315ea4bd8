// cmd/client/cmd/data/data.go
package data

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"iotracker/cmd/client/cmd/types"
	"iotracker/internal/app/client"
	"iotracker/internal/domain/sensor"
)

var (
	period string
	date   string
	format string
)

var DataCmd = &cobra.Command{
	Use:   "data",
	Short: "Показания за неделю или месяц",
	Long: `Загружает показания текущего пользователя за неделю (пн–вс) или
календарный месяц, содержащие указанную дату.`,
	Example: `  iotracker data --period week
  iotracker data --period month --date 2024-02-10 --format json`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := types.App(cmd)
		if err != nil {
			return err
		}

		sess, err := app.Session()
		if err != nil {
			return err
		}

		readings, r, err := app.Readings(cmd.Context(), sess, sensor.Period(period), date)
		if err != nil {
			return err
		}

		switch format {
		case "json":
			return printJSON(os.Stdout, readings)
		case "table":
			return printTable(os.Stdout, r, readings)
		default:
			return fmt.Errorf("неизвестный формат: %s", format)
		}
	},
}

func printTable(out io.Writer, r sensor.DateRange, readings []client.Reading) error {
	fmt.Fprintf(out, "Период: %s, записей: %d\n\n", r.String(), len(readings))
	if len(readings) == 0 {
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ВРЕМЯ\tПУЛЬС\tТЕМПЕРАТУРА\tСКОРОСТЬ")
	for _, rd := range readings {
		fmt.Fprintf(w, "%s\t%d\t%d\t%d\n",
			rd.Timestamp().Local().Format("2006-01-02 15:04:05"), rd.BPM, rd.Temperature, rd.Speed)
	}
	return w.Flush()
}

func printJSON(out io.Writer, readings []client.Reading) error {
	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(readings)
}

func init() {
	DataCmd.Flags().StringVarP(&period, "period", "p", string(sensor.PeriodWeek), "период: week или month")
	DataCmd.Flags().StringVarP(&date, "date", "d", "", "дата внутри периода, YYYY-MM-DD (по умолчанию сегодня)")
	DataCmd.Flags().StringVarP(&format, "format", "f", "table", "формат вывода (table, json)")
}
