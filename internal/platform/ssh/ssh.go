package ssh

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"os"
	"path"
	"strconv"
	"strings"
	"time"

	"golang.org/x/crypto/ssh"

	"github.com/imamik/clusterup/internal/util/retry"
)

const (
	defaultPort        = 22
	defaultDialTimeout = 10 * time.Second
	defaultMaxRetries  = 30
	defaultRetryDelay  = 2 * time.Second
	defaultMaxDelay    = 10 * time.Second
)

// Config holds SSH client configuration.
type Config struct {
	Host       string
	Port       int
	User       string
	PrivateKey []byte

	// DialTimeout is the timeout for establishing the TCP connection.
	// If zero, defaultDialTimeout is used.
	DialTimeout time.Duration

	// MaxRetries is the maximum number of connection retry attempts.
	// If zero, defaultMaxRetries is used.
	MaxRetries int

	// RetryDelay is the initial delay between retry attempts.
	// If zero, defaultRetryDelay is used.
	RetryDelay time.Duration

	// HostKeyCallback handles host key verification.
	// If nil, ssh.InsecureIgnoreHostKey() is used; local VMs are recreated
	// with fresh host keys on every boot.
	HostKeyCallback ssh.HostKeyCallback
}

// Client runs commands on one machine. It parses the private key once and
// opens a connection per call.
type Client struct {
	config *Config
	signer ssh.Signer
	dial   func(network, addr string, cfg *ssh.ClientConfig) (*ssh.Client, error)
}

// NewClient creates a new SSH client and validates the private key.
func NewClient(cfg *Config) (*Client, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}
	if cfg.Host == "" {
		return nil, fmt.Errorf("config host cannot be empty")
	}
	if cfg.User == "" {
		return nil, fmt.Errorf("config user cannot be empty")
	}
	if len(cfg.PrivateKey) == 0 {
		return nil, fmt.Errorf("config private key cannot be empty")
	}

	// Copy config to avoid mutating caller's struct
	c := *cfg
	if c.Port == 0 {
		c.Port = defaultPort
	}
	if c.DialTimeout == 0 {
		c.DialTimeout = defaultDialTimeout
	}
	if c.MaxRetries == 0 {
		c.MaxRetries = defaultMaxRetries
	}
	if c.RetryDelay == 0 {
		c.RetryDelay = defaultRetryDelay
	}
	if c.HostKeyCallback == nil {
		c.HostKeyCallback = ssh.InsecureIgnoreHostKey() //nolint:gosec // Throwaway VMs
	}

	signer, err := ssh.ParsePrivateKey(c.PrivateKey)
	if err != nil {
		return nil, fmt.Errorf("failed to parse private key: %w", err)
	}

	return &Client{config: &c, signer: signer, dial: ssh.Dial}, nil
}

// Address returns host:port the client connects to.
func (c *Client) Address() string {
	return net.JoinHostPort(c.config.Host, strconv.Itoa(c.config.Port))
}

// Run executes command elevated on the remote host. stdout and stderr may be
// nil. The exit status is returned with a nil error when the command ran;
// the error is set only when it could not be started or the connection broke.
func (c *Client) Run(ctx context.Context, command string, stdout, stderr io.Writer) (int, error) {
	return c.run(ctx, c.elevate(command), nil, stdout, stderr)
}

// Upload writes content to remotePath with mode, creating parent
// directories. The content is streamed over the session's stdin.
func (c *Client) Upload(ctx context.Context, remotePath string, content []byte, mode os.FileMode) error {
	cmd := fmt.Sprintf("mkdir -p %s && cat > %s && chmod %o %s",
		shellQuote(path.Dir(remotePath)), shellQuote(remotePath), mode.Perm(), shellQuote(remotePath))

	var stderr strings.Builder
	status, err := c.run(ctx, c.elevate(cmd), strings.NewReader(string(content)), nil, &stderr)
	if err != nil {
		return fmt.Errorf("failed to upload %s to %s: %w", remotePath, c.config.Host, err)
	}
	if status != 0 {
		return fmt.Errorf("failed to upload %s to %s: exit status %d: %s",
			remotePath, c.config.Host, status, strings.TrimSpace(stderr.String()))
	}
	return nil
}

func (c *Client) run(ctx context.Context, command string, stdin io.Reader, stdout, stderr io.Writer) (int, error) {
	client, err := c.connect(ctx)
	if err != nil {
		return -1, err
	}
	defer func() { _ = client.Close() }()

	session, err := client.NewSession()
	if err != nil {
		return -1, fmt.Errorf("failed to create SSH session on %s: %w", c.config.Host, err)
	}
	defer func() { _ = session.Close() }()

	session.Stdin = stdin
	session.Stdout = stdout
	session.Stderr = stderr

	done := make(chan error, 1)
	go func() { done <- session.Run(command) }()

	select {
	case <-ctx.Done():
		_ = session.Signal(ssh.SIGKILL)
		_ = client.Close()
		return -1, fmt.Errorf("command on %s interrupted: %w", c.config.Host, ctx.Err())
	case err := <-done:
		return exitStatus(err, c.config.Host)
	}
}

// connect establishes SSH connection with retry logic. Machines that were
// just booted may refuse connections for a while.
func (c *Client) connect(ctx context.Context) (*ssh.Client, error) {
	config := &ssh.ClientConfig{
		User:            c.config.User,
		Auth:            []ssh.AuthMethod{ssh.PublicKeys(c.signer)},
		HostKeyCallback: c.config.HostKeyCallback,
		Timeout:         c.config.DialTimeout,
	}

	addr := c.Address()
	var client *ssh.Client
	err := retry.Do(ctx, func() error {
		var dialErr error
		client, dialErr = c.dial("tcp", addr, config)
		if isAuthError(dialErr) {
			return retry.Fatal(dialErr)
		}
		return dialErr
	},
		retry.WithMaxRetries(c.config.MaxRetries),
		retry.WithInitialDelay(c.config.RetryDelay),
		retry.WithMaxDelay(defaultMaxDelay),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to establish SSH connection to %s: %w", addr, err)
	}
	return client, nil
}

// elevate wraps command in non-interactive sudo unless the user is root.
func (c *Client) elevate(command string) string {
	if c.config.User == "root" {
		return command
	}
	return "sudo -n -- bash -c " + shellQuote(command)
}

func exitStatus(err error, host string) (int, error) {
	if err == nil {
		return 0, nil
	}
	var exitErr *ssh.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitStatus(), nil
	}
	var missing *ssh.ExitMissingError
	if errors.As(err, &missing) {
		return -1, fmt.Errorf("command on %s ended without exit status: %w", host, err)
	}
	return -1, fmt.Errorf("command failed on %s: %w", host, err)
}

// isAuthError reports handshake failures that retrying cannot fix.
func isAuthError(err error) bool {
	return err != nil && strings.Contains(err.Error(), "unable to authenticate")
}

// shellQuote quotes s for POSIX shells.
func shellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
