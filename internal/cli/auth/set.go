package auth

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/steviee/cfbrowse/internal/cli/common"
	"github.com/steviee/cfbrowse/internal/credential"
)

// NewSetCommand creates the auth set command.
func NewSetCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set <key|->",
		Short: "Store an API key",
		Long: `Store a CurseForge API key. Pass "-" to read the key from stdin.

The cache is keyed by the credential, so results fetched with another key
are never reused after the key changes.`,
		Example: `  cfbrowse auth set $CURSEFORGE_KEY
  cfbrowse auth set - < key.txt`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonMode := common.IsJSON(cmd)

			key, err := readKey(args[0], cmd.InOrStdin())
			if err != nil {
				return common.OutputError(cmd.OutOrStdout(), jsonMode, err)
			}

			store, err := common.OpenCredentials(nil)
			if err != nil {
				return common.OutputError(cmd.OutOrStdout(), jsonMode, err)
			}

			return runSet(cmd.OutOrStdout(), store, key, jsonMode)
		},
	}

	return cmd
}

// readKey returns arg, or the first line of in when arg is "-".
func readKey(arg string, in io.Reader) (string, error) {
	if arg != "-" {
		return strings.TrimSpace(arg), nil
	}

	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("read API key from stdin: %w", err)
	}

	key := strings.TrimSpace(line)
	if key == "" {
		return "", errors.New("no API key on stdin")
	}
	return key, nil
}

func runSet(w io.Writer, store *credential.Store, key string, jsonMode bool) error {
	if key == "" {
		return common.OutputError(w, jsonMode, errors.New("API key must not be empty, use 'cfbrowse auth clear' to remove it"))
	}

	err := store.Set(key)
	persisted := true
	switch {
	case errors.Is(err, credential.ErrNotPersisted):
		persisted = false
	case err != nil:
		return common.OutputError(w, jsonMode, fmt.Errorf("invalid API key: %w", err))
	}

	if jsonMode {
		return common.WriteJSON(w, map[string]any{
			"key":       credential.Mask(store.Get()),
			"path":      store.Path(),
			"persisted": persisted,
		})
	}

	if !persisted {
		_, _ = fmt.Fprintf(w, "API key set for this session only; could not write %s\n", store.Path())
		return err
	}
	_, _ = fmt.Fprintf(w, "API key %s stored in %s\n", credential.Mask(store.Get()), store.Path())
	return nil
}
