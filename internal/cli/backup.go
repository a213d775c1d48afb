package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/existflow/gleam/internal/backup"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export a backup snapshot",
	Long: `Write the full store (projects, entries, ideas) to a backup file.

Examples:
  gleam export
  gleam export --out ~/backups/may.json
  gleam export --encrypt`,
	RunE: runExport,
}

var importCmd = &cobra.Command{
	Use:   "import [file]",
	Short: "Restore a backup snapshot",
	Long: `Replace the entire store with a backup file's contents. This is a
destructive overwrite; nothing is merged.`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

var (
	exportOut     string
	exportEncrypt bool
	importYes     bool
)

func init() {
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "Output file (default gleam_backup_<date>.json)")
	exportCmd.Flags().BoolVarP(&exportEncrypt, "encrypt", "e", false, "Protect the backup with a passphrase")
	importCmd.Flags().BoolVarP(&importYes, "yes", "y", false, "Skip the confirmation prompt")
}

// readPassphrase prompts without echoing.
func readPassphrase(prompt string) (string, error) {
	fmt.Print(prompt)
	pass, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		return "", fmt.Errorf("failed to read passphrase: %w", err)
	}
	return string(pass), nil
}

func runExport(cmd *cobra.Command, args []string) error {
	s, cleanup, err := openStore()
	if err != nil {
		return err
	}
	defer cleanup()

	now := time.Now()
	data, err := backup.Encode(backup.Export(s, now))
	if err != nil {
		return err
	}

	if exportEncrypt {
		pass, err := readPassphrase("Passphrase: ")
		if err != nil {
			return err
		}
		again, err := readPassphrase("Again: ")
		if err != nil {
			return err
		}
		if pass != again {
			return fmt.Errorf("passphrases do not match")
		}
		if pass == "" {
			return fmt.Errorf("empty passphrase")
		}
		if data, err = backup.Seal(data, pass); err != nil {
			return fmt.Errorf("failed to encrypt backup: %w", err)
		}
	}

	out := exportOut
	if out == "" {
		out = backup.DefaultFilename(now)
	}
	if err := os.WriteFile(out, data, 0600); err != nil {
		return fmt.Errorf("failed to write backup: %w", err)
	}

	fmt.Printf("✓ Exported to %s\n", out)
	return nil
}

func runImport(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read backup: %w", err)
	}

	if backup.IsEncrypted(data) {
		pass, err := readPassphrase("Passphrase: ")
		if err != nil {
			return err
		}
		if data, err = backup.Unseal(data, pass); err != nil {
			return err
		}
	}

	// Validate before prompting so a bad file fails fast.
	if _, err := backup.Decode(data); err != nil {
		return err
	}

	if !importYes {
		if !confirm("Importing overwrites ALL current data. Continue?") {
			fmt.Println("Cancelled.")
			return nil
		}
	}

	s, cleanup, err := openStore()
	if err != nil {
		return err
	}
	defer cleanup()

	if err := backup.Import(s, data); err != nil {
		return err
	}

	fmt.Printf("✓ Restored %d projects, %d entries, %d ideas\n",
		len(s.Projects()), len(s.Entries()), len(s.Inspirations()))
	return nil
}
