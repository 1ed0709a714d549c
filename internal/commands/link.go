package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"golang.org/x/oauth2"

	"focus/internal/backend/googletasks"
	"focus/internal/config"
	"focus/internal/exitcode"
)

const (
	// How long the browser has to come back to the loopback server.
	callbackTimeout = 5 * time.Minute

	// Deadline for exchanging the code.
	exchangeTimeout = 30 * time.Second

	// Loopback ports tried in order: 8085..8089.
	firstCallbackPort = 8085
	callbackPorts     = 5
)

var errLinkCancelled = errors.New("link cancelled")

func init() {
	Register(&LinkCmd{})
}

// LinkCmd implements the link command: authorize push to Google Tasks.
type LinkCmd struct{}

func (c *LinkCmd) Name() string      { return "link" }
func (c *LinkCmd) Aliases() []string { return nil }
func (c *LinkCmd) Synopsis() string  { return "Authorize mirroring to Google Tasks" }
func (c *LinkCmd) Usage() string     { return "focus link [common flags]" }
func (c *LinkCmd) NeedsAuth() bool   { return true }

func (c *LinkCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *LinkCmd) Run(ctx context.Context, env *Env, args []string, out, errOut io.Writer) int {
	cfg := env.Config

	if !cfg.HasOAuthClient() {
		printClientSetup(errOut, cfg.Dir)
		return exitcode.AuthError
	}
	oauthConfig, err := googletasks.LoadOAuthConfig(cfg)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.AuthError
	}

	if linked(ctx, cfg, oauthConfig) {
		if !cfg.Quiet {
			fmt.Fprintln(out, "already linked")
		}
		return exitcode.Success
	}

	token, err := authorize(ctx, oauthConfig, errOut)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.AuthError
	}
	if err := googletasks.SaveToken(cfg, token); err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.AuthError
	}

	cfg.Debugf("token saved to %s", cfg.TokenPath())
	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}

func printClientSetup(w io.Writer, dir string) {
	fmt.Fprintf(w, "error: oauth_client.json not found in %s\n\n", dir)
	fmt.Fprintln(w, "push needs a Google OAuth client of type 'Desktop app':")
	fmt.Fprintln(w, "  1. https://console.cloud.google.com/apis/credentials")
	fmt.Fprintln(w, "  2. enable the Google Tasks API and create the client")
	fmt.Fprintf(w, "  3. save the downloaded JSON as %s/oauth_client.json\n", dir)
	fmt.Fprintln(w, "then run 'focus link' again.")
}

// linked reports whether the stored token can still produce an access
// token. Tokens without a refresh token are treated as unlinked.
func linked(ctx context.Context, cfg *config.Config, oauthConfig *oauth2.Config) bool {
	if !cfg.HasToken() {
		return false
	}
	token, err := googletasks.LoadToken(cfg)
	if err != nil || token.RefreshToken == "" {
		return false
	}

	ctx, cancel := context.WithTimeout(ctx, googletasks.APITimeout)
	defer cancel()
	_, err = oauthConfig.TokenSource(ctx, token).Token()
	return err == nil
}

// authorize runs the PKCE loopback flow: print the consent URL, wait for
// the browser redirect, exchange the code.
func authorize(ctx context.Context, oauthConfig *oauth2.Config, prompt io.Writer) (*oauth2.Token, error) {
	if ctx.Err() != nil {
		return nil, errLinkCancelled
	}

	ln, port, err := listenLoopback()
	if err != nil {
		return nil, err
	}
	defer ln.Close()

	state := oauth2.GenerateVerifier()
	verifier := oauth2.GenerateVerifier()
	oauthConfig.RedirectURL = fmt.Sprintf("http://localhost:%d/callback", port)

	fmt.Fprintln(prompt, "Open this URL in your browser to allow focus to push tasks:")
	fmt.Fprintln(prompt, oauthConfig.AuthCodeURL(state, oauth2.AccessTypeOffline, oauth2.S256ChallengeOption(verifier)))

	code, err := awaitCallback(ctx, ln, state, callbackTimeout)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, exchangeTimeout)
	defer cancel()
	token, err := oauthConfig.Exchange(ctx, code, oauth2.VerifierOption(verifier))
	if err != nil {
		return nil, fmt.Errorf("failed to exchange code for token: %w", err)
	}
	return token, nil
}

func listenLoopback() (net.Listener, int, error) {
	for port := firstCallbackPort; port < firstCallbackPort+callbackPorts; port++ {
		ln, err := net.Listen("tcp", fmt.Sprintf("localhost:%d", port))
		if err == nil {
			return ln, port, nil
		}
	}
	return nil, 0, fmt.Errorf("no free local port for the oauth callback (tried %d-%d)",
		firstCallbackPort, firstCallbackPort+callbackPorts-1)
}

type callbackResult struct {
	code string
	err  error
}

// awaitCallback serves /callback on ln until the first redirect carrying
// the expected state arrives, then returns its authorization code.
func awaitCallback(ctx context.Context, ln net.Listener, state string, timeout time.Duration) (string, error) {
	results := make(chan callbackResult, 1)
	report := func(r callbackResult) {
		select {
		case results <- r:
		default:
		}
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/callback", func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		switch {
		case q.Get("state") != state:
			http.Error(w, "state mismatch", http.StatusBadRequest)
			report(callbackResult{err: errors.New("oauth callback state mismatch")})
		case q.Get("error") != "":
			http.Error(w, "authorization denied", http.StatusForbidden)
			report(callbackResult{err: fmt.Errorf("authorization denied: %s", q.Get("error"))})
		case q.Get("code") == "":
			http.Error(w, "missing code", http.StatusBadRequest)
			report(callbackResult{err: errors.New("no code in oauth callback")})
		default:
			w.Header().Set("Content-Type", "text/html")
			fmt.Fprint(w, "<html><body><h1>focus is linked</h1><p>You may close this window.</p></body></html>")
			report(callbackResult{code: q.Get("code")})
		}
	})

	server := &http.Server{Handler: mux, ReadHeaderTimeout: 10 * time.Second}
	go func() {
		if err := server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			report(callbackResult{err: err})
		}
	}()
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		server.Shutdown(shutdownCtx)
	}()

	select {
	case r := <-results:
		return r.code, r.err
	case <-time.After(timeout):
		return "", errors.New("oauth callback timed out")
	case <-ctx.Done():
		return "", errLinkCancelled
	}
}
