package calendar

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"iotracker/cmd/client/cmd/types"
)

// CalendarCmd - локальные отметки дней календаря
var CalendarCmd = &cobra.Command{
	Use:   "calendar",
	Short: "Отметки прошедших и запланированных дней",
}

var (
	markPast   bool
	markFuture bool
)

var MarkCmd = &cobra.Command{
	Use:     "mark DATE",
	Short:   "Отметить дату (YYYY-MM-DD)",
	Example: "  iotracker calendar mark --past 2024-03-05",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := types.App(cmd)
		if err != nil {
			return err
		}
		if markPast == markFuture {
			return errors.New("укажите ровно один из флагов --past или --future")
		}

		days, err := app.MarkDay(args[0], markPast)
		if err != nil {
			return err
		}
		fmt.Printf("✓ Отмечено. Всего дней: %d\n", len(days))
		return nil
	},
}

var ShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Показать отмеченные даты",
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := types.App(cmd)
		if err != nil {
			return err
		}

		past, future, err := app.Calendar()
		if err != nil {
			return err
		}

		fmt.Printf("Прошедшие: %s\n", orDash(past))
		fmt.Printf("Будущие:   %s\n", orDash(future))
		return nil
	},
}

func orDash(days []string) string {
	if len(days) == 0 {
		return "-"
	}
	return strings.Join(days, ", ")
}

func init() {
	MarkCmd.Flags().BoolVar(&markPast, "past", false, "отметить прошедший день")
	MarkCmd.Flags().BoolVar(&markFuture, "future", false, "отметить будущий день")
}
