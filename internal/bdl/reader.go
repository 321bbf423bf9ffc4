package bdl

import (
	"bufio"
	"errors"
	"io"
	"regexp"
	"strings"

	"github.com/Karpman-Consulting/DOE2-229RPDGenerator-sub000/internal/enums/bdlenum"
	"go.uber.org/zap"
)

// ErrEmptyInput is returned when the text holds nothing but whitespace.
var ErrEmptyInput = errors.New("bdl: empty input")

// LibraryLayouts maps library-entry commands to their positional keywords.
var LibraryLayouts = map[string][]string{
	bdlenum.CmdCurveFit:  {"TYPE", "INPUT-TYPE", "COEFFICIENTS", "OUTPUT-MIN", "OUTPUT-MAX"},
	bdlenum.CmdMaterial:  {"TYPE", "THICKNESS", "CONDUCTIVITY", "DENSITY", "SPECIFIC-HEAT"},
	bdlenum.CmdGlassType: {"TYPE", "SHADING-COEF", "GLASS-CONDUCT", "VIS-TRANS"},
}

// UnitsVocabulary holds the unit annotations stripped from scalar values.
var UnitsVocabulary = bdlenum.Units

var (
	versionRe     = regexp.MustCompile(`DOE-2\.\d[\w.\-]*`)
	declarationRe = regexp.MustCompile(`^\s*"([^"]+)"\s*=\s*([A-Z0-9][A-Z0-9\-/]*)\s*(LIBRARY-ENTRY)?`)
	dataForRe     = regexp.MustCompile(`^\s*DATA FOR\s+"?([^"]*?)"?\s*$`)
)

// Option configures a Reader.
type Option func(*Reader)

// WithLogger sets the logger used for skipped-command diagnostics.
func WithLogger(logger *zap.Logger) Option {
	return func(r *Reader) { r.logger = logger }
}

// WithCommands overrides the set of consumed command types.
func WithCommands(commands *bdlenum.Enum) Option {
	return func(r *Reader) { r.commands = commands }
}

// Reader turns BDL text into records. A Reader holds no per-read state and
// may be shared.
type Reader struct {
	commands *bdlenum.Enum
	units    *bdlenum.Enum
	logger   *zap.Logger
}

// NewReader creates a reader for the registered command set.
func NewReader(opts ...Option) *Reader {
	r := &Reader{
		commands: bdlenum.Commands,
		units:    UnitsVocabulary,
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Parse reads text with a default Reader.
func Parse(text string) (*File, error) {
	return NewReader().Read(strings.NewReader(text))
}

// parseState tracks the open block and the implicit parent chain.
type parseState struct {
	file *File

	current   *Record
	inBlock   bool
	libBody   strings.Builder
	pendingKW string
	pendingV  strings.Builder

	floor    string
	space    string
	plain    string
	plainCmd string
	skipped  map[string]int
}

// Read parses a BDL stream. Malformed lines are skipped; only empty input
// and read failures are errors.
func (r *Reader) Read(in io.Reader) (*File, error) {
	st := &parseState{file: &File{}, skipped: make(map[string]int)}

	sc := bufio.NewScanner(in)
	sc.Buffer(make([]byte, 64*1024), 4*1024*1024)
	lineNo := 0
	seen := false
	for sc.Scan() {
		lineNo++
		line := strings.TrimRight(sc.Text(), "\r")
		if strings.TrimSpace(line) != "" {
			seen = true
		}
		r.line(st, line, lineNo)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if !seen {
		return nil, ErrEmptyInput
	}
	r.endBlock(st)

	if len(st.skipped) > 0 {
		r.logger.Debug("skipped unconsumed commands", zap.Any("commands", st.skipped))
	}
	return st.file, nil
}

func (r *Reader) line(st *parseState, line string, lineNo int) {
	trimmed := strings.TrimSpace(line)

	if st.file.Version == "" {
		if v := versionRe.FindString(line); v != "" {
			st.file.Version = v
		}
	}

	if st.pendingKW != "" {
		if trimmed == "" || !startsIndented(line) || declarationRe.MatchString(line) || dataForRe.MatchString(line) {
			r.flushPending(st)
		} else {
			st.pendingV.WriteString(" ")
			st.pendingV.WriteString(trimmed)
			if parenDepth(st.pendingV.String()) <= 0 {
				r.flushPending(st)
			}
			return
		}
	}

	switch {
	case strings.HasPrefix(trimmed, "$"):
		return
	case trimmed == "" || trimmed == "..":
		r.endBlock(st)
		return
	}

	if m := declarationRe.FindStringSubmatch(line); m != nil {
		r.endBlock(st)
		r.declare(st, m[1], m[2], m[3] != "", lineNo)
		return
	}

	if m := dataForRe.FindStringSubmatch(line); m != nil {
		r.endBlock(st)
		st.inBlock = st.current != nil && st.current.Name == m[1]
		return
	}

	if !startsIndented(line) {
		r.endBlock(st)
		return
	}
	if !st.inBlock || st.current == nil {
		return
	}

	if st.current.Library {
		st.libBody.WriteString(" ")
		st.libBody.WriteString(trimmed)
		return
	}

	eq := strings.IndexByte(trimmed, '=')
	if eq <= 0 {
		return
	}
	kw := strings.TrimSpace(trimmed[:eq])
	raw := strings.TrimSpace(trimmed[eq+1:])
	if kw == "" {
		return
	}
	if parenDepth(raw) > 0 {
		st.pendingKW = kw
		st.pendingV.Reset()
		st.pendingV.WriteString(raw)
		return
	}
	if v, ok := parseValue(raw, r.units.Has); ok {
		st.current.add(kw, v)
	}
}

func (r *Reader) flushPending(st *parseState) {
	if st.current != nil {
		if v, ok := parseValue(st.pendingV.String(), r.units.Has); ok {
			st.current.add(st.pendingKW, v)
		}
	}
	st.pendingKW = ""
	st.pendingV.Reset()
}

func (r *Reader) declare(st *parseState, name, command string, library bool, lineNo int) {
	if !r.commands.Has(command) {
		st.skipped[command]++
		st.current = nil
		st.inBlock = false
		return
	}

	rec := newRecord(command, name, lineNo)
	rec.Library = library && bdlenum.LibraryCommands.Has(command)

	switch command {
	case bdlenum.CmdFloor:
		st.floor, st.space, st.plain, st.plainCmd = name, "", "", ""
	case bdlenum.CmdSpace:
		rec.Parent = st.floor
		st.space, st.plain, st.plainCmd = name, "", ""
	case bdlenum.CmdExteriorWall, bdlenum.CmdInteriorWall, bdlenum.CmdUndergroundWall:
		rec.Parent = st.space
		st.plain, st.plainCmd = name, command
	case bdlenum.CmdWindow, bdlenum.CmdDoor:
		if isWall(st.plainCmd) {
			rec.Parent = st.plain
		}
	case bdlenum.CmdSystem:
		st.plain, st.plainCmd = name, command
	case bdlenum.CmdZone:
		if st.plainCmd == bdlenum.CmdSystem {
			rec.Parent = st.plain
		}
	}

	st.file.Records = append(st.file.Records, rec)
	st.current = rec
	st.inBlock = true
}

func (r *Reader) endBlock(st *parseState) {
	if st.pendingKW != "" {
		r.flushPending(st)
	}
	if st.current != nil && st.current.Library && st.libBody.Len() > 0 {
		layout := LibraryLayouts[st.current.Command]
		for i, v := range positionalTokens(st.libBody.String()) {
			if i >= len(layout) {
				break
			}
			st.current.set(layout[i], v)
		}
		st.libBody.Reset()
	}
	st.inBlock = false
}

func isWall(command string) bool {
	switch command {
	case bdlenum.CmdExteriorWall, bdlenum.CmdInteriorWall, bdlenum.CmdUndergroundWall:
		return true
	}
	return false
}

func startsIndented(line string) bool {
	return line != "" && (line[0] == ' ' || line[0] == '\t')
}
