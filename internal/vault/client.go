// Package vault offers one typed call per FileVault subcommand on top of
// the bridge. It only assembles argv; the values themselves are checked by
// FileVault, whose complaints come back as a failed result.
package vault

import (
	"context"

	"github.com/deixis/vaultbridge/internal/bridge"
)

// CommandRunner executes FileVault with argv.
// Implemented by bridge.Bridge.
type CommandRunner interface {
	Invoke(ctx context.Context, args []string) (*bridge.Invocation, error)
}

// Client runs typed FileVault commands.
type Client struct {
	Runner CommandRunner
}

// Do runs any command.
func (c *Client) Do(ctx context.Context, cmd Command) (*bridge.Invocation, error) {
	return c.Runner.Invoke(ctx, cmd.Args())
}

func (c *Client) Encrypt(ctx context.Context, o EncryptOptions) (*bridge.Invocation, error) {
	return c.Do(ctx, o)
}

func (c *Client) Decrypt(ctx context.Context, o DecryptOptions) (*bridge.Invocation, error) {
	return c.Do(ctx, o)
}

func (c *Client) Hash(ctx context.Context, o HashOptions) (*bridge.Invocation, error) {
	return c.Do(ctx, o)
}

func (c *Client) Keygen(ctx context.Context, o KeygenOptions) (*bridge.Invocation, error) {
	return c.Do(ctx, o)
}

func (c *Client) Sign(ctx context.Context, o SignOptions) (*bridge.Invocation, error) {
	return c.Do(ctx, o)
}

func (c *Client) Verify(ctx context.Context, o VerifyOptions) (*bridge.Invocation, error) {
	return c.Do(ctx, o)
}

func (c *Client) StegoEmbed(ctx context.Context, o StegoEmbedOptions) (*bridge.Invocation, error) {
	return c.Do(ctx, o)
}

func (c *Client) StegoExtract(ctx context.Context, o StegoExtractOptions) (*bridge.Invocation, error) {
	return c.Do(ctx, o)
}

func (c *Client) ArchiveCreate(ctx context.Context, o ArchiveCreateOptions) (*bridge.Invocation, error) {
	return c.Do(ctx, o)
}

func (c *Client) ArchiveExtract(ctx context.Context, o ArchiveExtractOptions) (*bridge.Invocation, error) {
	return c.Do(ctx, o)
}

func (c *Client) Compress(ctx context.Context, o CompressOptions) (*bridge.Invocation, error) {
	return c.Do(ctx, o)
}

func (c *Client) Decompress(ctx context.Context, o DecompressOptions) (*bridge.Invocation, error) {
	return c.Do(ctx, o)
}

func (c *Client) Benchmark(ctx context.Context, o BenchmarkOptions) (*bridge.Invocation, error) {
	return c.Do(ctx, o)
}

func (c *Client) Info(ctx context.Context, o InfoOptions) (*bridge.Invocation, error) {
	return c.Do(ctx, o)
}
