package main

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/heartmarshall/prompt-vault/internal/domain"
)

// Terminal access, overridable for non-tty environments.
var (
	readPassword = term.ReadPassword
	isTerminal   = term.IsTerminal
)

const defaultServer = "http://localhost:8080"

// vaultClient calls a running prompt vault server.
type vaultClient struct {
	server string
	token  string
	http   *http.Client
}

func newVaultClient(server, token string) *vaultClient {
	return &vaultClient{
		server: strings.TrimRight(server, "/"),
		token:  token,
		http:   &http.Client{Timeout: 30 * time.Second},
	}
}

type apiError struct {
	Status  int
	Message string
}

func (e *apiError) Error() string {
	return fmt.Sprintf("server returned %d: %s", e.Status, e.Message)
}

func (c *vaultClient) do(ctx context.Context, method, path string, body, out any) error {
	var r io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		r = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.server+path, r)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		var e struct {
			Error string `json:"error"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&e)
		if e.Error == "" {
			e.Error = http.StatusText(resp.StatusCode)
		}
		return &apiError{Status: resp.StatusCode, Message: e.Error}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// readSecret reads the passphrase without echo from a terminal, or as one
// line from piped input.
func readSecret(cmd *cobra.Command) (string, error) {
	if f, ok := cmd.InOrStdin().(*os.File); ok && isTerminal(int(f.Fd())) {
		fmt.Fprint(cmd.ErrOrStderr(), "Admin passphrase: ")
		pw, err := readPassword(int(f.Fd()))
		fmt.Fprintln(cmd.ErrOrStderr())
		if err != nil {
			return "", fmt.Errorf("read passphrase: %w", err)
		}
		return string(pw), nil
	}

	line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("read passphrase: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func loginCmd(sessions func() (*sessionStore, error)) *cobra.Command {
	var server string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in as admin and store the session token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := sessions()
			if err != nil {
				return err
			}

			passphrase, err := readSecret(cmd)
			if err != nil {
				return err
			}

			var resp struct {
				Token     string     `json:"token"`
				ExpiresAt *time.Time `json:"expiresAt"`
			}
			client := newVaultClient(server, "")
			if err := client.do(cmd.Context(), http.MethodPost, "/session/login",
				map[string]string{"passphrase": passphrase}, &resp); err != nil {
				return fmt.Errorf("login: %w", err)
			}

			if err := store.Save(session{Server: client.server, Token: resp.Token, ExpiresAt: resp.ExpiresAt}); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), "logged in to", client.server)
			return nil
		},
	}

	cmd.Flags().StringVar(&server, "server", envOr("VAULT_SERVER", defaultServer), "server base URL")
	return cmd
}

func logoutCmd(sessions func() (*sessionStore, error)) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Discard the stored session token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := sessions()
			if err != nil {
				return err
			}
			if err := store.Clear(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "logged out")
			return nil
		},
	}
}

func deleteCategoryCmd(sessions func() (*sessionStore, error)) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete-category <id>",
		Short: "Delete a category and move its prompts to Uncategorized",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := sessions()
			if err != nil {
				return err
			}
			sess, err := store.Load()
			if err != nil {
				return err
			}
			client := newVaultClient(sess.Server, sess.Token)
			id := args[0]

			var menu []domain.Category
			if err := client.do(cmd.Context(), http.MethodGet, "/categories", nil, &menu); err != nil {
				return err
			}
			name := ""
			for _, c := range menu {
				if c.ID == id && c.Name != domain.CategoryAll {
					name = c.Name
				}
			}
			if name == "" {
				return fmt.Errorf("category %s: %w", id, domain.ErrNotFound)
			}

			if !yes {
				ok, err := confirm(cmd, fmt.Sprintf("Delete category %q? Its prompts move to %s.", name, domain.CategoryUncategorized))
				if err != nil {
					return err
				}
				if !ok {
					fmt.Fprintln(cmd.OutOrStdout(), "aborted")
					return nil
				}
			}

			var resp struct {
				Reassigned []string `json:"reassigned"`
				Warning    string   `json:"warning"`
			}
			path := "/categories/" + url.PathEscape(id) + "?confirm=true"
			if err := client.do(cmd.Context(), http.MethodDelete, path, nil, &resp); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "deleted %q, %d prompts moved to %s\n",
				name, len(resp.Reassigned), domain.CategoryUncategorized)
			if resp.Warning != "" {
				fmt.Fprintln(cmd.ErrOrStderr(), "warning:", resp.Warning)
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")
	return cmd
}

func confirm(cmd *cobra.Command, question string) (bool, error) {
	fmt.Fprintf(cmd.OutOrStdout(), "%s [y/N] ", question)
	line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, err
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
