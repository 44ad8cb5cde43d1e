package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/GLee998/church-database-bot/internal/server/jwt"
	"github.com/GLee998/church-database-bot/internal/validation"
	apimodels "github.com/GLee998/church-database-bot/pkg/api"
)

// minSecretLength совпадает с проверкой конфигурации сервера
const minSecretLength = 16

func (c *Cli) statusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the state of the server's roster mirror",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := c.client.Status(cmd.Context())
			if err != nil {
				return describeError(err)
			}
			c.printStatus(resp)
			return nil
		},
	}
}

func (c *Cli) syncCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "sync",
		Short: "Reload the roster from the spreadsheet now (admins only)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := c.client.Sync(cmd.Context())
			if err != nil {
				return describeError(err)
			}
			c.io.Println("Roster reloaded.")
			c.printStatus(resp)
			return nil
		},
	}
}

func (c *Cli) printStatus(st *apimodels.StatusResponse) {
	c.io.Printf("Records:      %d\n", st.Records)
	if !st.FetchedAt.IsZero() {
		c.io.Printf("Last sync:    %s (%s ago)\n", st.FetchedAt.Local().Format(time.DateTime), formatAge(st.AgeSeconds))
	} else {
		c.io.Println("Last sync:    never")
	}
	if st.Stale {
		c.io.Println("State:        stale")
	}
	if st.SyncToken != "" {
		token := st.SyncToken
		if len(token) > 12 {
			token = token[:12]
		}
		c.io.Printf("Sync token:   %s\n", token)
	}
	if st.LastError != "" {
		c.io.Printf("Last error:   %s\n", st.LastError)
	}
	if len(st.PendingWrites) > 0 {
		c.io.Printf("Pending:      %d write(s)\n", len(st.PendingWrites))
		for _, w := range st.PendingWrites {
			c.io.Printf("  %s %s (base revision %d)\n", w.ID, w.State, w.BaseRevision)
		}
	}
	if len(st.Quarantined) > 0 {
		c.io.Printf("Quarantined:  %d row(s)\n", len(st.Quarantined))
		for _, q := range st.Quarantined {
			c.io.Printf("  row %d: %s\n", q.Row, q.Reason)
		}
	}
}

// secretSource источники общего секрета
type secretSource struct {
	FromFile string
	FromArgs string
}

func (c *Cli) tokenCommand() *cobra.Command {
	var (
		src  secretSource
		name string
		ttl  time.Duration
	)
	cmd := &cobra.Command{
		Use:   "token <user-id>",
		Short: "Issue an access token signed with the server's auth secret",
		Long: `Issue an access token signed with the server's auth secret.

Secret priority (highest to lowest):
  1. ROSTER_AUTH_SECRET environment variable
  2. --secret-file (file path)
  3. --secret (command line)
  4. Interactive prompt`,
		Args:        cobra.ExactArgs(1),
		Annotations: map[string]string{"offline": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validation.ValidateSubject(args[0]); err != nil {
				return fmt.Errorf("invalid user id: %w", err)
			}
			secret, err := c.readSecret(src)
			if err != nil {
				return err
			}

			token, expires, err := jwt.NewService(secret, ttl).Issue(args[0], name)
			if err != nil {
				return fmt.Errorf("failed to issue token: %w", err)
			}

			c.io.Println(token)
			c.io.Printf("# expires %s; export ROSTER_TOKEN=<token>\n", expires.Local().Format(time.DateTime))
			return nil
		},
	}
	cmd.Flags().StringVar(&src.FromArgs, "secret", "", "Auth secret (not recommended, use env var or file)")
	cmd.Flags().StringVar(&src.FromFile, "secret-file", "", "Path to file containing the auth secret")
	cmd.Flags().StringVar(&name, "name", "", "Display name stored in the token")
	cmd.Flags().DurationVar(&ttl, "ttl", 30*24*time.Hour, "Token lifetime")
	return cmd
}

// readSecret получает секрет из окружения, файла, флага или с терминала
func (c *Cli) readSecret(src secretSource) (string, error) {
	secret, err := c.lookupSecret(src)
	if err != nil {
		return "", err
	}
	if len(secret) < minSecretLength {
		return "", fmt.Errorf("auth secret must be at least %d characters", minSecretLength)
	}
	return secret, nil
}

func (c *Cli) lookupSecret(src secretSource) (string, error) {
	// Priority 1: Environment variable
	if secret := c.env.GetString("auth.secret"); secret != "" {
		return secret, nil
	}

	// Priority 2: File
	if src.FromFile != "" {
		content, err := os.ReadFile(src.FromFile)
		if err != nil {
			return "", fmt.Errorf("failed to read secret file: %w", err)
		}
		secret := strings.TrimSpace(string(content))
		if secret == "" {
			return "", errors.New("secret file is empty")
		}
		return secret, nil
	}

	// Priority 3: CLI parameter
	if src.FromArgs != "" {
		return src.FromArgs, nil
	}

	// Priority 4: Interactive prompt
	secret, err := c.io.ReadPassword("Auth secret: ")
	if err != nil {
		return "", fmt.Errorf("failed to read secret: %w", err)
	}
	if secret == "" {
		return "", errors.New("secret cannot be empty")
	}
	return secret, nil
}
