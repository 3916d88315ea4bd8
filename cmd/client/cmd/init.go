// cmd/client/cmd/init.go
package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"iotracker/cmd/client/cmd/auth"
	"iotracker/cmd/client/cmd/calendar"
	"iotracker/cmd/client/cmd/data"
	"iotracker/cmd/client/cmd/types"
	"iotracker/internal/app/client"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Проверить соединение с сервером и текущую сессию",
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := types.App(cmd)
		if err != nil {
			return err
		}

		if err := app.CheckConnection(cmd.Context()); err != nil {
			fmt.Printf("⚠️  Сервер: %s\n", client.Describe(err))
		} else {
			fmt.Println("✓ Соединение с сервером установлено")
		}

		sess, err := app.Session()
		switch {
		case errors.Is(err, client.ErrNoSession):
			fmt.Println("Вход не выполнен")
		case err != nil:
			return err
		default:
			fmt.Printf("Пользователь: %s (вход %s)\n", sess.Login, sess.LoggedInAt.Local().Format("2006-01-02 15:04"))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)

	rootCmd.AddCommand(auth.AuthCmd)
	auth.AuthCmd.AddCommand(auth.RegisterCmd)
	auth.AuthCmd.AddCommand(auth.LoginCmd)
	auth.AuthCmd.AddCommand(auth.LogoutCmd)

	rootCmd.AddCommand(data.DataCmd)

	rootCmd.AddCommand(calendar.CalendarCmd)
	calendar.CalendarCmd.AddCommand(calendar.MarkCmd)
	calendar.CalendarCmd.AddCommand(calendar.ShowCmd)
}
