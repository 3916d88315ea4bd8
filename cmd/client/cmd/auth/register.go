// cmd/client/cmd/auth/register.go
package auth

import (
	"fmt"

	"github.com/spf13/cobra"

	"iotracker/cmd/client/cmd/types"
)

var RegisterCmd = &cobra.Command{
	Use:   "register",
	Short: "Зарегистрировать нового пользователя",
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := types.App(cmd)
		if err != nil {
			return err
		}

		fmt.Println("=== Регистрация нового пользователя ===")
		fmt.Println()

		login, err := promptLogin()
		if err != nil {
			return err
		}

		password, err := promptPassword("Пароль: ")
		if err != nil {
			return err
		}
		passwordConfirm, err := promptPassword("Повторите пароль: ")
		if err != nil {
			return err
		}
		if password != passwordConfirm {
			return fmt.Errorf("пароли не совпадают")
		}

		fmt.Println("Регистрация...")
		if err := app.Register(cmd.Context(), login, password); err != nil {
			return fmt.Errorf("ошибка регистрации: %w", err)
		}

		fmt.Println()
		fmt.Println("✅ Регистрация успешно завершена!")
		fmt.Println("Теперь вы можете войти в систему: iotracker auth login")

		return nil
	},
}
