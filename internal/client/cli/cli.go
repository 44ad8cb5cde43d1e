// Package cli implements the command-line client of the roster service.
package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/GLee998/church-database-bot/internal/client/api"
	"github.com/GLee998/church-database-bot/internal/client/iocli"
	apimodels "github.com/GLee998/church-database-bot/pkg/api"
)

//go:generate moq -out client_mock.go . Client

// Client API сервера реестра, нужный командам
type Client interface {
	Schema(ctx context.Context) (*apimodels.SchemaResponse, error)
	Search(ctx context.Context, prefix string, limit int) (*apimodels.SearchResponse, error)
	GetRecord(ctx context.Context, id string) (*apimodels.RecordResponse, error)
	CreateRecord(ctx context.Context, fields map[string]string) (*apimodels.WriteResponse, error)
	UpdateRecord(ctx context.Context, id string, revision int64, fields map[string]string) (*apimodels.WriteResponse, error)
	Ask(ctx context.Context, question string) (*apimodels.AskResponse, error)
	Letters(ctx context.Context) (*apimodels.LettersResponse, error)
	ByLetter(ctx context.Context, letter string) (*apimodels.EntriesResponse, error)
	Groups(ctx context.Context) (*apimodels.GroupsResponse, error)
	Birthdays(ctx context.Context, month int) (*apimodels.EntriesResponse, error)
	Status(ctx context.Context) (*apimodels.StatusResponse, error)
	Sync(ctx context.Context) (*apimodels.StatusResponse, error)
}

// ClientFactory создает клиент после разбора флагов
type ClientFactory func(server, token string) Client

// DefaultServer адрес сервера по умолчанию
const DefaultServer = "http://localhost:8080"

// Cli состояние одного запуска клиента
type Cli struct {
	io     iocli.IO
	client Client
	env    *viper.Viper
	now    func() time.Time
}

// New создает Cli с готовым клиентом. Используется в тестах и при встраивании.
func New(io iocli.IO, client Client) *Cli {
	return &Cli{io: io, client: client, env: newEnv(), now: time.Now}
}

// newEnv переменные окружения ROSTER_SERVER, ROSTER_TOKEN, ROSTER_AUTH_SECRET
func newEnv() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix("ROSTER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	v.SetDefault("server", DefaultServer)
	v.SetDefault("token", "")
	v.SetDefault("auth.secret", "")
	return v
}

// NewRootCommand builds the command tree. Flags override ROSTER_* environment variables.
func NewRootCommand(io iocli.IO, factory ClientFactory, version string) *cobra.Command {
	c := &Cli{io: io, env: newEnv(), now: time.Now}

	root := &cobra.Command{
		Use:           "roster",
		Short:         "Church roster client",
		Long:          "Search, browse and edit the church roster, or ask questions about it in plain language.",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if c.client != nil || cmd.Annotations["offline"] == "true" {
				return nil
			}
			token := c.env.GetString("token")
			if token == "" {
				return errors.New("no access token: pass --token or set ROSTER_TOKEN")
			}
			c.client = factory(c.env.GetString("server"), token)
			return nil
		},
	}
	root.SetOut(io)
	root.SetErr(io)

	root.PersistentFlags().String("server", DefaultServer, "Server URL (env ROSTER_SERVER)")
	root.PersistentFlags().String("token", "", "Access token (env ROSTER_TOKEN)")
	_ = c.env.BindPFlag("server", root.PersistentFlags().Lookup("server"))
	_ = c.env.BindPFlag("token", root.PersistentFlags().Lookup("token"))

	root.AddCommand(
		c.searchCommand(),
		c.getCommand(),
		c.addCommand(),
		c.editCommand(),
		c.askCommand(),
		c.lettersCommand(),
		c.groupsCommand(),
		c.birthdaysCommand(),
		c.statusCommand(),
		c.syncCommand(),
		c.tokenCommand(),
	)
	return root
}

// NewAPIClientFactory создает фабрику HTTP клиентов
func NewAPIClientFactory() ClientFactory {
	return func(server, token string) Client {
		return api.NewClient(strings.TrimRight(server, "/"), token)
	}
}

// describeError делает ошибку сервера понятной человеку
func describeError(err error) error {
	var apiErr *api.Error
	if !errors.As(err, &apiErr) {
		return err
	}

	switch apiErr.Code {
	case apimodels.CodeStaleWrite:
		return fmt.Errorf("the record changed since you loaded it, fetch it again and retry: %s", apiErr.Message)
	case apimodels.CodeConflict:
		return fmt.Errorf("someone else changed the record at the same time, fetch it again and retry: %s", apiErr.Message)
	case apimodels.CodeWriteInProgress:
		return fmt.Errorf("another change to this record is being saved, try again in a moment")
	case apimodels.CodeUnrecognizedIntent:
		return fmt.Errorf("the question is not about the roster or cannot be answered from it")
	case apimodels.CodeUnauthorized:
		return fmt.Errorf("access token rejected, get a new one with 'roster token'")
	case apimodels.CodeForbidden:
		return fmt.Errorf("access denied: %s", apiErr.Message)
	}
	if apiErr.Retriable {
		return fmt.Errorf("%s (temporary, try again later)", apiErr.Message)
	}
	return apiErr
}

func (c *Cli) staleWarning(info apimodels.SnapshotInfo) {
	if info.Stale {
		c.io.Printf("Warning: data may be out of date (last sync %s ago)\n", formatAge(info.AgeSeconds))
	}
}

func formatAge(seconds float64) string {
	if seconds < 0 {
		return "never"
	}
	return (time.Duration(seconds) * time.Second).Round(time.Second).String()
}
