package mcp

import (
	"context"

	"github.com/deixis/vaultbridge/internal/vault"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// addCommandTool registers a tool whose parameters are a typed FileVault command.
func addCommandTool[C vault.Command](s *mcp.Server, h *handler, name, description string) {
	mcp.AddTool(s, &mcp.Tool{Name: name, Description: description},
		func(ctx context.Context, req *mcp.CallToolRequest, cmd C) (*mcp.CallToolResult, any, error) {
			return h.invoke(ctx, cmd)
		})
}

func registerCommandTools(s *mcp.Server, h *handler) {
	addCommandTool[vault.EncryptOptions](s, h, "vault_encrypt", "Encrypt a file with FileVault.")
	addCommandTool[vault.DecryptOptions](s, h, "vault_decrypt", "Decrypt a FileVault-encrypted file with a password or key file.")
	addCommandTool[vault.HashOptions](s, h, "vault_hash", "Hash a file.")
	addCommandTool[vault.KeygenOptions](s, h, "vault_keygen", "Generate a key pair.")
	addCommandTool[vault.SignOptions](s, h, "vault_sign", "Sign a file with a private key.")
	addCommandTool[vault.VerifyOptions](s, h, "vault_verify", "Verify a file's signature with a public key.")
	addCommandTool[vault.StegoEmbedOptions](s, h, "vault_stego_embed", "Hide a file inside an image.")
	addCommandTool[vault.StegoExtractOptions](s, h, "vault_stego_extract", "Recover a file hidden inside an image.")
	addCommandTool[vault.ArchiveCreateOptions](s, h, "vault_archive_create", "Pack files into an optionally encrypted archive.")
	addCommandTool[vault.ArchiveExtractOptions](s, h, "vault_archive_extract", "Unpack an archive.")
	addCommandTool[vault.CompressOptions](s, h, "vault_compress", "Compress a file.")
	addCommandTool[vault.DecompressOptions](s, h, "vault_decompress", "Decompress a file; the algorithm is detected.")
	addCommandTool[vault.BenchmarkOptions](s, h, "vault_benchmark", "Benchmark FileVault's algorithms.")
	addCommandTool[vault.InfoOptions](s, h, "vault_info", "Show the header of an encrypted file.")
}
