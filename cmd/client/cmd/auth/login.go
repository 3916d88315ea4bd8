// cmd/client/cmd/auth/login.go
package auth

import (
	"fmt"

	"github.com/spf13/cobra"

	"iotracker/cmd/client/cmd/types"
)

var LoginCmd = &cobra.Command{
	Use:   "login",
	Short: "Войти в систему",
	Long: `Проверка логина и пароля на сервере.

После входа логин сохраняется локально и используется командами data.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := types.App(cmd)
		if err != nil {
			return err
		}

		fmt.Println("=== Вход в систему ===")
		fmt.Println()

		login, err := promptLogin()
		if err != nil {
			return err
		}
		password, err := promptPassword("Пароль: ")
		if err != nil {
			return err
		}

		fmt.Println("Аутентификация...")
		sess, err := app.Login(cmd.Context(), login, password)
		if err != nil {
			return fmt.Errorf("ошибка аутентификации: %w", err)
		}

		fmt.Println()
		fmt.Printf("✅ Вход выполнен: %s\n", sess.Login)
		return nil
	},
}

var LogoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Выйти и удалить локальную сессию",
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := types.App(cmd)
		if err != nil {
			return err
		}
		if err := app.Logout(); err != nil {
			return err
		}
		fmt.Println("Сессия удалена")
		return nil
	},
}
