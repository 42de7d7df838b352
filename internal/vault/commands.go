package vault

import (
	"strconv"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Command is anything that can be turned into a FileVault argv.
type Command interface {
	Name() string
	Args() []string
}

// lower normalises algorithm-like values the way FileVault expects them.
func lower(s string) string {
	return cases.Lower(language.Und).String(s)
}

// argv accumulates arguments, skipping optional flags with empty values.
type argv []string

func (a *argv) add(args ...string) { *a = append(*a, args...) }

func (a *argv) opt(flag, value string) {
	if value != "" {
		a.add(flag, value)
	}
}

func (a *argv) optInt(flag string, value int) {
	if value != 0 {
		a.add(flag, strconv.Itoa(value))
	}
}

func (a *argv) flag(flag string, on bool) {
	if on {
		a.add(flag)
	}
}

// EncryptOptions encrypts a file.
type EncryptOptions struct {
	Input       string `json:"input" jsonschema:"file to encrypt"`
	Output      string `json:"output,omitempty" jsonschema:"destination file; FileVault picks one when empty"`
	Algorithm   string `json:"algorithm" jsonschema:"cipher, e.g. aes-256-gcm"`
	Password    string `json:"password,omitempty" jsonschema:"password; the weak-password prompt is skipped"`
	Mode        string `json:"mode,omitempty" jsonschema:"basic, standard or advanced"`
	Compression string `json:"compression,omitempty" jsonschema:"lzma, zlib or bzip2"`
	KDF         string `json:"kdf,omitempty" jsonschema:"key derivation function, e.g. argon2id"`
}

func (EncryptOptions) Name() string { return "encrypt" }

func (o EncryptOptions) Args() []string {
	a := argv{"encrypt", o.Input}
	if o.Output != "" {
		a.add(o.Output)
	}
	a.add("-a", lower(o.Algorithm))
	if o.Password != "" {
		a.add("-p", o.Password, "-y")
	}
	a.opt("-m", o.Mode)
	a.opt("--compression", lower(o.Compression))
	a.opt("--kdf", lower(o.KDF))
	return a
}

// DecryptOptions decrypts a file.
type DecryptOptions struct {
	Input    string `json:"input" jsonschema:"encrypted file"`
	Output   string `json:"output,omitempty" jsonschema:"destination file"`
	Password string `json:"password,omitempty" jsonschema:"password"`
	Keyfile  string `json:"keyfile,omitempty" jsonschema:"key file instead of a password"`
}

func (DecryptOptions) Name() string { return "decrypt" }

func (o DecryptOptions) Args() []string {
	a := argv{"decrypt", o.Input}
	if o.Output != "" {
		a.add(o.Output)
	}
	a.opt("-p", o.Password)
	a.opt("-k", o.Keyfile)
	return a
}

// HashOptions hashes a file.
type HashOptions struct {
	Input     string `json:"input" jsonschema:"file to hash"`
	Algorithm string `json:"algorithm" jsonschema:"hash algorithm, e.g. sha256"`
	Format    string `json:"format,omitempty" jsonschema:"hex, base64 or binary"`
}

func (HashOptions) Name() string { return "hash" }

func (o HashOptions) Args() []string {
	a := argv{"hash", o.Input, "-a", lower(o.Algorithm)}
	a.opt("--format", lower(o.Format))
	return a
}

// KeygenOptions generates a key pair.
type KeygenOptions struct {
	Algorithm string `json:"algorithm" jsonschema:"key algorithm, e.g. rsa-4096"`
	Output    string `json:"output" jsonschema:"output path prefix for the key pair"`
	Force     bool   `json:"force,omitempty" jsonschema:"overwrite existing keys"`
}

func (KeygenOptions) Name() string { return "keygen" }

func (o KeygenOptions) Args() []string {
	a := argv{"keygen", "-a", lower(o.Algorithm), "-o", o.Output}
	a.flag("-f", o.Force)
	return a
}

// SignOptions signs a file.
type SignOptions struct {
	Input      string `json:"input" jsonschema:"file to sign"`
	PrivateKey string `json:"private_key" jsonschema:"private key file"`
	Output     string `json:"output" jsonschema:"signature file"`
	Password   string `json:"password,omitempty" jsonschema:"private key password"`
}

func (SignOptions) Name() string { return "sign" }

func (o SignOptions) Args() []string {
	a := argv{"sign", o.Input, o.PrivateKey, "-o", o.Output}
	a.opt("-p", o.Password)
	return a
}

// VerifyOptions verifies a signature.
type VerifyOptions struct {
	Input     string `json:"input" jsonschema:"signed file"`
	Signature string `json:"signature" jsonschema:"signature file"`
	PublicKey string `json:"public_key" jsonschema:"public key file"`
}

func (VerifyOptions) Name() string { return "verify" }

func (o VerifyOptions) Args() []string {
	return []string{"verify", o.Input, o.Signature, o.PublicKey}
}

// StegoEmbedOptions hides a payload inside a container image.
type StegoEmbedOptions struct {
	Payload   string `json:"payload" jsonschema:"file to hide"`
	Container string `json:"container" jsonschema:"carrier image"`
	Output    string `json:"output" jsonschema:"resulting image"`
	Bits      int    `json:"bits,omitempty" jsonschema:"bits per channel, 1 to 4"`
}

func (StegoEmbedOptions) Name() string { return "stego embed" }

func (o StegoEmbedOptions) Args() []string {
	a := argv{"stego", "embed", o.Payload, o.Container, o.Output}
	a.optInt("-b", o.Bits)
	return a
}

// StegoExtractOptions recovers a hidden payload.
type StegoExtractOptions struct {
	Container string `json:"container" jsonschema:"image holding the payload"`
	Output    string `json:"output" jsonschema:"file to write the payload to"`
	Bits      int    `json:"bits,omitempty" jsonschema:"bits per channel, 1 to 4"`
}

func (StegoExtractOptions) Name() string { return "stego extract" }

func (o StegoExtractOptions) Args() []string {
	a := argv{"stego", "extract", o.Container, o.Output}
	a.optInt("-b", o.Bits)
	return a
}

// ArchiveCreateOptions packs files into an archive.
type ArchiveCreateOptions struct {
	Files       []string `json:"files" jsonschema:"files to archive"`
	Output      string   `json:"output" jsonschema:"archive file"`
	Compression string   `json:"compression,omitempty" jsonschema:"lzma, zlib or bzip2"`
	Password    string   `json:"password,omitempty" jsonschema:"encrypts the archive when set"`
}

func (ArchiveCreateOptions) Name() string { return "archive create" }

func (o ArchiveCreateOptions) Args() []string {
	a := argv{"archive", "create"}
	a.add(o.Files...)
	a.add("-o", o.Output)
	a.opt("-c", lower(o.Compression))
	a.opt("-p", o.Password)
	return a
}

// ArchiveExtractOptions unpacks an archive.
type ArchiveExtractOptions struct {
	Input    string `json:"input" jsonschema:"archive file"`
	Output   string `json:"output" jsonschema:"destination directory"`
	Password string `json:"password,omitempty" jsonschema:"archive password"`
}

func (ArchiveExtractOptions) Name() string { return "archive extract" }

func (o ArchiveExtractOptions) Args() []string {
	a := argv{"archive", "extract", o.Input, "-o", o.Output}
	a.opt("-p", o.Password)
	return a
}

// CompressOptions compresses a file.
type CompressOptions struct {
	Input     string `json:"input" jsonschema:"file to compress"`
	Output    string `json:"output" jsonschema:"compressed file"`
	Algorithm string `json:"algorithm" jsonschema:"lzma, zlib or bzip2"`
	Level     int    `json:"level,omitempty" jsonschema:"compression level"`
}

func (CompressOptions) Name() string { return "compress" }

func (o CompressOptions) Args() []string {
	a := argv{"compress", o.Input, "-a", lower(o.Algorithm), "-o", o.Output}
	a.optInt("-l", o.Level)
	return a
}

// DecompressOptions decompresses a file. The algorithm is detected by FileVault.
type DecompressOptions struct {
	Input  string `json:"input" jsonschema:"compressed file"`
	Output string `json:"output" jsonschema:"destination file"`
}

func (DecompressOptions) Name() string { return "decompress" }

func (o DecompressOptions) Args() []string {
	return []string{"decompress", o.Input, "-o", o.Output}
}

// BenchmarkOptions benchmarks algorithms. Without an algorithm every
// algorithm is benchmarked.
type BenchmarkOptions struct {
	Algorithm   string `json:"algorithm,omitempty" jsonschema:"single algorithm to benchmark"`
	Size        int    `json:"size,omitempty" jsonschema:"data size"`
	Iterations  int    `json:"iterations,omitempty" jsonschema:"iterations per algorithm"`
	Symmetric   bool   `json:"symmetric,omitempty" jsonschema:"include symmetric ciphers"`
	Asymmetric  bool   `json:"asymmetric,omitempty" jsonschema:"include asymmetric algorithms"`
	PQC         bool   `json:"pqc,omitempty" jsonschema:"include post-quantum algorithms"`
	Hash        bool   `json:"hash,omitempty" jsonschema:"include hash functions"`
	KDF         bool   `json:"kdf,omitempty" jsonschema:"include key derivation functions"`
	Compression bool   `json:"compression,omitempty" jsonschema:"include compression algorithms"`
}

func (BenchmarkOptions) Name() string { return "benchmark" }

func (o BenchmarkOptions) Args() []string {
	a := argv{"benchmark"}
	if o.Algorithm != "" {
		a.add("-a", o.Algorithm)
	} else {
		a.add("--all")
	}
	a.optInt("-s", o.Size)
	a.optInt("-i", o.Iterations)
	a.flag("--symmetric", o.Symmetric)
	a.flag("--asymmetric", o.Asymmetric)
	a.flag("--pqc", o.PQC)
	a.flag("--hash", o.Hash)
	a.flag("--kdf", o.KDF)
	a.flag("--compression", o.Compression)
	return a
}

// InfoOptions describes an encrypted file.
type InfoOptions struct {
	Input   string `json:"input" jsonschema:"encrypted file"`
	Verbose bool   `json:"verbose,omitempty" jsonschema:"include every header field"`
}

func (InfoOptions) Name() string { return "info" }

func (o InfoOptions) Args() []string {
	a := argv{"info", o.Input}
	a.flag("-v", o.Verbose)
	return a
}
