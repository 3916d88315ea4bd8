package types

import (
	"errors"

	"github.com/spf13/cobra"

	"iotracker/internal/app/client"
)

type ctxKey string

// ClientAppKey ключ *client.App в контексте команды
const ClientAppKey ctxKey = "client_app"

var ErrAppNotInitialized = errors.New("приложение не инициализировано")

// App достает клиент из контекста команды.
func App(cmd *cobra.Command) (*client.App, error) {
	if cmd.Context() == nil {
		return nil, ErrAppNotInitialized
	}
	app, ok := cmd.Context().Value(ClientAppKey).(*client.App)
	if !ok || app == nil {
		return nil, ErrAppNotInitialized
	}
	return app, nil
}
