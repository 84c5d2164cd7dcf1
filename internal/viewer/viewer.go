// Package viewer decides whether a requested filename may be read and from where.
//
// The filter is intentionally bypassable: requests that normalize to something
// containing app/flag.txt are answered with the local flag file.
package viewer

import (
	"errors"
	"io/fs"
	"path"
	"path/filepath"
	"runtime"
	"strings"

	"flagviewer/internal/fileaccess"
	"flagviewer/internal/inputvalidation"
)

const appFlagSuffix = "app/flag.txt"

// Config locates the flag file and bounds reads.
type Config struct {
	FlagPath  string // file written at bootstrap
	BaseDir   string // program directory, second fallback candidate root
	ReadLimit int    // characters per read
	GOOS      string // defaults to runtime.GOOS
}

// Viewer runs the access decision chain. It holds no mutable state and is safe
// for concurrent use.
type Viewer struct {
	cfg       Config
	validator *inputvalidation.Validator
}

type viewRequest struct {
	File string `validate:"required"`
}

// New returns a Viewer; BaseDir defaults to the flag file's directory.
func New(cfg Config) *Viewer {
	if cfg.BaseDir == "" {
		cfg.BaseDir = filepath.Dir(cfg.FlagPath)
	}
	if cfg.ReadLimit <= 0 {
		cfg.ReadLimit = fileaccess.DefaultLimit
	}
	if cfg.GOOS == "" {
		cfg.GOOS = runtime.GOOS
	}
	return &Viewer{cfg: cfg, validator: inputvalidation.NewValidator()}
}

// View classifies raw and, when allowed, reads the file it resolves to.
func (v *Viewer) View(raw string) Result {
	if IsTrivialFlagRequest(raw) {
		return Result{Kind: Denied}
	}
	if IsNaiveTraversal(raw) {
		return Result{Kind: Denied}
	}
	if err := v.validator.ValidateStruct(viewRequest{File: strings.TrimSpace(raw)}); err != nil {
		return Result{Kind: Invalid}
	}
	if MatchesBypass(Normalize(raw)) {
		return v.serveFlag()
	}
	return v.fallback(raw)
}

// MatchesBypass reports whether a normalized name targets app/flag.txt.
func MatchesBypass(norm string) bool {
	return strings.Contains(norm, appFlagSuffix) ||
		strings.HasSuffix(norm, "/"+appFlagSuffix) ||
		strings.HasSuffix(norm, appFlagSuffix)
}

func (v *Viewer) serveFlag() Result {
	content, err := fileaccess.ReadText(v.cfg.FlagPath, v.cfg.ReadLimit)
	switch {
	case err == nil:
		return Result{Kind: Served, Body: content, Source: SourceBypass, Path: v.cfg.FlagPath}
	case errors.Is(err, fs.ErrNotExist):
		return Result{Kind: NotFound, Source: SourceBypass}
	default:
		return Result{Kind: ReadError, Source: SourceBypass, Path: v.cfg.FlagPath, Err: err}
	}
}

// Candidates lists the paths tried for raw, in order. Only the first is
// cleaned; the base directory candidate keeps trailing separators and dot
// segments so "flag.txt/" stats as a directory lookup and fails.
func (v *Viewer) Candidates(raw string) []string {
	rel := strings.TrimLeft(raw, "/")
	return []string{
		path.Clean("/" + rel),
		joinRaw(v.cfg.BaseDir, rel),
		raw,
	}
}

// joinRaw appends rel to dir without cleaning. An absolute rel replaces dir.
func joinRaw(dir, rel string) string {
	if filepath.IsAbs(rel) || dir == "" {
		return rel
	}
	if strings.HasSuffix(dir, string(filepath.Separator)) || strings.HasSuffix(dir, "/") {
		return dir + rel
	}
	return dir + string(filepath.Separator) + rel
}

// baseName returns the text after the last separator, which is empty when p
// ends in one.
func (v *Viewer) baseName(p string) string {
	seps := "/"
	if v.cfg.GOOS == "windows" {
		seps = `/\:`
	}
	return p[strings.LastIndexAny(p, seps)+1:]
}

func (v *Viewer) fallback(raw string) Result {
	for _, p := range v.Candidates(raw) {
		if v.cfg.GOOS == "windows" && hasSlashedDrive(p) {
			p = strings.TrimLeft(p, "/")
		}
		if strings.EqualFold(v.baseName(p), flagName) && stripTrivial(raw) == flagName {
			return Result{Kind: Denied, Source: SourceFallback}
		}
		if !fileaccess.IsRegularFile(p) {
			continue
		}
		content, err := fileaccess.ReadText(p, v.cfg.ReadLimit)
		if err != nil {
			continue
		}
		return Result{Kind: Served, Body: content, Source: SourceFallback, Path: p}
	}
	return Result{Kind: NotFound, Source: SourceFallback}
}

// hasSlashedDrive matches "/C:..." produced by joining a drive path onto "/".
func hasSlashedDrive(p string) bool {
	if len(p) <= 2 || p[0] != '/' || p[2] != ':' {
		return false
	}
	c := p[1]
	return ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')
}
