package cmd

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/bnema/confbot/internal/adapters/transport/ws"
	"github.com/bnema/confbot/internal/application"
	"github.com/bnema/confbot/internal/domain"
)

func newRunCmd(app *app) *cobra.Command {
	var listenAddr string

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the bot on the local websocket transport",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			profile, err := loadOrCreateProfile(ctx, app)
			if err != nil {
				return err
			}

			var address [domain.AddressLength]byte
			raw, err := hex.DecodeString(string(profile.Address))
			if err != nil || len(raw) != domain.AddressLength {
				return fmt.Errorf("snapshot holds a malformed address %q", profile.Address)
			}
			copy(address[:], raw)

			hub := ws.NewHub(address)
			bot := application.NewBot(hub, hub, app.masters, app.snapshots, nil)
			bot.SetLogOutput(cmd.OutOrStdout())
			bot.SetPurgeLimit(app.config.PurgeLimit)
			if err := bot.RestoreProfile(ctx, profile); err != nil {
				return err
			}

			if listenAddr == "" {
				listenAddr = app.config.ListenAddr
			}

			mux := http.NewServeMux()
			mux.Handle("/chat", hub)

			server := &http.Server{Addr: listenAddr, Handler: mux}

			go func() {
				err := hub.Run(ctx, func(ctx context.Context, from domain.Identity, raw string) error {
					err := bot.Execute(ctx, from, raw)
					if err != nil && !silentDispatchError(err) {
						fmt.Fprintf(cmd.ErrOrStderr(), "dispatch for %s failed: %v\n", from, err)
					}
					return err
				})
				if err != nil && !errors.Is(err, context.Canceled) {
					fmt.Fprintf(cmd.ErrOrStderr(), "dispatch loop stopped: %v\n", err)
				}
			}()

			go func() {
				<-ctx.Done()
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				_ = server.Shutdown(shutdownCtx)
			}()

			fmt.Fprintf(cmd.OutOrStdout(), "confbot listening on ws://%s/chat\n", listenAddr)
			fmt.Fprintf(cmd.OutOrStdout(), "address: %s\n", strings.ToUpper(string(profile.Address)))

			if err := server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("serve transport: %w", err)
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&listenAddr, "listen", "", "listen address for the websocket transport (overrides config)")

	return cmd
}

// silentDispatchError reports whether a dispatch failure is one of the
// outcomes the bot deliberately never answers: oversized input, a quote
// mismatch, or a command name nothing matches.
func silentDispatchError(err error) bool {
	return errors.Is(err, application.ErrCommandTooLong) ||
		errors.Is(err, application.ErrUnknownCommand) ||
		errors.Is(err, application.ErrUnterminatedQuote)
}

func loadOrCreateProfile(ctx context.Context, app *app) (domain.Profile, error) {
	profile, err := app.snapshots.Load(ctx)
	if err == nil {
		return profile, nil
	}
	if !errors.Is(err, domain.ErrSnapshotNotFound) {
		return domain.Profile{}, fmt.Errorf("load profile snapshot: %w", err)
	}

	var address [domain.AddressLength]byte
	if _, err := rand.Read(address[:]); err != nil {
		return domain.Profile{}, fmt.Errorf("generate bot address: %w", err)
	}

	profile = domain.Profile{
		Name:     app.config.BotName,
		Presence: domain.PresenceOnline,
		Address:  domain.Identity(strings.ToUpper(hex.EncodeToString(address[:]))),
	}

	if err := app.snapshots.Save(ctx, profile); err != nil {
		return domain.Profile{}, fmt.Errorf("save initial profile snapshot: %w", err)
	}

	return profile, nil
}
