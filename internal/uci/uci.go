// Package uci implements the line-oriented Universal Chess Interface
// protocol that drives the engine from a GUI or a test harness over
// stdin/stdout.
package uci

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/meneldor/meneldor/internal/board"
	"github.com/meneldor/meneldor/internal/engine"
)

// debugMode, when enabled via "setoption name Debug value true", prints
// extra info-string diagnostics to stderr.
var debugMode bool

// UCI implements the Universal Chess Interface protocol over stdin/stdout.
type UCI struct {
	engine   *engine.Engine
	position *board.Position

	// positionHashes holds the Zobrist key of every position reached so
	// far in the current game, for search-time repetition detection.
	positionHashes []uint64

	searching     atomic.Bool
	searchDone    chan struct{}
	stopRequested atomic.Bool
}

// New creates a UCI protocol handler wrapping eng.
func New(eng *engine.Engine) *UCI {
	return &UCI{
		engine:   eng,
		position: board.NewPosition(),
	}
}

// Run reads UCI commands from stdin until "quit" or EOF.
func (u *UCI) Run() {
	scanner := bufio.NewScanner(os.Stdin)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		parts := strings.Fields(line)
		cmd := parts[0]
		args := parts[1:]

		switch cmd {
		case "uci":
			u.handleUCI()
		case "isready":
			fmt.Println("readyok")
		case "ucinewgame":
			u.handleNewGame()
		case "position":
			u.handlePosition(args)
		case "go":
			u.handleGo(args)
		case "stop":
			u.handleStop()
		case "quit":
			u.handleQuit()
		case "setoption":
			u.handleSetOption(args)
		case "debug":
			u.handleDebug(args)
		case "d":
			u.printBoard()
		case "perft":
			u.handlePerft(args)
		}
	}
}

// handleUCI responds to the "uci" command with engine identification and
// supported options.
func (u *UCI) handleUCI() {
	fmt.Println("id name Meneldor")
	fmt.Println("id author Meneldor Team")
	fmt.Println()
	fmt.Println("option name Hash type spin default 64 min 1 max 4096")
	fmt.Println("option name Contempt type spin default 0 min -100 max 100")
	fmt.Println("option name Debug type check default false")
	fmt.Println("uciok")
}

// handleNewGame resets the engine and position for a new game.
func (u *UCI) handleNewGame() {
	u.engine.Clear()
	u.position = board.NewPosition()
	u.positionHashes = []uint64{u.position.Hash}
}

// handlePosition parses and applies a "position" command:
//
//	position startpos
//	position startpos moves e2e4 e7e5
//	position fen <fen>
//	position fen <fen> moves e2e4
func (u *UCI) handlePosition(args []string) {
	if len(args) == 0 {
		return
	}

	u.positionHashes = nil
	var moveStart int

	switch args[0] {
	case "startpos":
		u.position = board.NewPosition()
		moveStart = len(args)
		for i, arg := range args {
			if arg == "moves" {
				moveStart = i + 1
				break
			}
		}
	case "fen":
		fenEnd := len(args)
		for i, arg := range args[1:] {
			if arg == "moves" {
				fenEnd = i + 1
				break
			}
		}
		fenStr := strings.Join(args[1:fenEnd], " ")
		pos, err := board.ParseFEN(fenStr)
		if err != nil {
			fmt.Fprintf(os.Stderr, "info string invalid FEN: %v\n", err)
			return
		}
		u.position = pos
		moveStart = len(args)
		for i, arg := range args {
			if arg == "moves" {
				moveStart = i + 1
				break
			}
		}
	default:
		return
	}

	u.positionHashes = append(u.positionHashes, u.position.Hash)

	for _, moveStr := range args[moveStart:] {
		move := u.parseMove(moveStr)
		if move == board.NoMove {
			fmt.Fprintf(os.Stderr, "info string invalid move: %s\n", moveStr)
			return
		}
		u.position.MakeMove(move)
		u.positionHashes = append(u.positionHashes, u.position.Hash)
	}

	if debugMode {
		fmt.Fprintf(os.Stderr, "info string hash=%016x inCheck=%v\n", u.position.Hash, u.position.InCheck())
	}
}

// parseMove resolves a UCI long-algebraic move string ("e2e4", "e7e8q")
// against the legal moves of the current position.
func (u *UCI) parseMove(moveStr string) board.Move {
	if len(moveStr) < 4 {
		return board.NoMove
	}

	fromFile := int(moveStr[0] - 'a')
	fromRank := int(moveStr[1] - '1')
	toFile := int(moveStr[2] - 'a')
	toRank := int(moveStr[3] - '1')

	if fromFile < 0 || fromFile > 7 || fromRank < 0 || fromRank > 7 ||
		toFile < 0 || toFile > 7 || toRank < 0 || toRank > 7 {
		return board.NoMove
	}

	from := board.NewSquare(fromFile, fromRank)
	to := board.NewSquare(toFile, toRank)

	var promo board.PieceType
	if len(moveStr) == 5 {
		switch moveStr[4] {
		case 'q':
			promo = board.Queen
		case 'r':
			promo = board.Rook
		case 'b':
			promo = board.Bishop
		case 'n':
			promo = board.Knight
		}
	}

	moves := u.position.GenerateLegalMoves()
	for i := 0; i < moves.Len(); i++ {
		m := moves.Get(i)
		if m.From() != from || m.To() != to {
			continue
		}
		if promo != 0 {
			if m.IsPromotion() && m.Promotion() == promo {
				return m
			}
		} else if !m.IsPromotion() {
			return m
		}
	}

	return board.NoMove
}

// GoOptions holds the parsed arguments of a "go" command.
type GoOptions struct {
	Depth     int
	Nodes     uint64
	MoveTime  time.Duration
	Infinite  bool
	WTime     time.Duration
	BTime     time.Duration
	WInc      time.Duration
	BInc      time.Duration
	MovesToGo int
}

// handleGo starts a search in a goroutine so the UCI loop stays
// responsive to "stop".
func (u *UCI) handleGo(args []string) {
	opts := u.parseGoOptions(args)

	u.engine.SetPositionHistory(u.positionHashes)
	u.engine.OnInfo = func(info engine.SearchInfo) {
		u.sendInfo(info)
	}

	u.searching.Store(true)
	u.stopRequested.Store(false)
	u.searchDone = make(chan struct{})

	pos := u.position.Copy()
	ply := len(u.positionHashes)

	go func() {
		defer close(u.searchDone)

		var bestMove board.Move
		if opts.Infinite || opts.WTime > 0 || opts.BTime > 0 {
			limits := engine.UCILimits{
				Time:      [2]time.Duration{opts.WTime, opts.BTime},
				Inc:       [2]time.Duration{opts.WInc, opts.BInc},
				MovesToGo: opts.MovesToGo,
				MoveTime:  opts.MoveTime,
				Depth:     opts.Depth,
				Nodes:     opts.Nodes,
				Infinite:  opts.Infinite,
			}
			bestMove = u.engine.SearchWithUCILimits(pos, limits, ply)
		} else {
			limits := engine.SearchLimits{
				Depth:    opts.Depth,
				Nodes:    opts.Nodes,
				MoveTime: opts.MoveTime,
				Infinite: opts.Infinite,
			}
			bestMove = u.engine.SearchWithLimits(pos, limits)
		}

		u.searching.Store(false)

		validationPos := u.position.Copy()
		if bestMove != board.NoMove {
			legal := validationPos.GenerateLegalMoves()
			for i := 0; i < legal.Len(); i++ {
				if legal.Get(i) == bestMove {
					fmt.Printf("bestmove %s\n", bestMove.String())
					return
				}
			}
			fmt.Fprintf(os.Stderr, "info string search returned illegal move %s\n", bestMove.String())
		}

		legal := validationPos.GenerateLegalMoves()
		if legal.Len() > 0 {
			fmt.Printf("bestmove %s\n", legal.Get(0).String())
		} else {
			fmt.Println("bestmove 0000")
		}
	}()
}

// parseGoOptions parses "go" command arguments into GoOptions.
func (u *UCI) parseGoOptions(args []string) GoOptions {
	var opts GoOptions

	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "depth":
			if i+1 < len(args) {
				opts.Depth, _ = strconv.Atoi(args[i+1])
				i++
			}
		case "nodes":
			if i+1 < len(args) {
				n, _ := strconv.ParseUint(args[i+1], 10, 64)
				opts.Nodes = n
				i++
			}
		case "movetime":
			if i+1 < len(args) {
				ms, _ := strconv.Atoi(args[i+1])
				opts.MoveTime = time.Duration(ms) * time.Millisecond
				i++
			}
		case "infinite":
			opts.Infinite = true
		case "wtime":
			if i+1 < len(args) {
				ms, _ := strconv.Atoi(args[i+1])
				opts.WTime = time.Duration(ms) * time.Millisecond
				i++
			}
		case "btime":
			if i+1 < len(args) {
				ms, _ := strconv.Atoi(args[i+1])
				opts.BTime = time.Duration(ms) * time.Millisecond
				i++
			}
		case "winc":
			if i+1 < len(args) {
				ms, _ := strconv.Atoi(args[i+1])
				opts.WInc = time.Duration(ms) * time.Millisecond
				i++
			}
		case "binc":
			if i+1 < len(args) {
				ms, _ := strconv.Atoi(args[i+1])
				opts.BInc = time.Duration(ms) * time.Millisecond
				i++
			}
		case "movestogo":
			if i+1 < len(args) {
				opts.MovesToGo, _ = strconv.Atoi(args[i+1])
				i++
			}
		}
	}

	return opts
}

// sendInfo prints a search iteration as a UCI "info" line.
func (u *UCI) sendInfo(info engine.SearchInfo) {
	var parts []string

	parts = append(parts, fmt.Sprintf("depth %d", info.Depth))

	if info.Score > engine.MateScore-100 {
		mateIn := (engine.MateScore - info.Score + 1) / 2
		parts = append(parts, fmt.Sprintf("score mate %d", mateIn))
	} else if info.Score < -engine.MateScore+100 {
		mateIn := -(engine.MateScore + info.Score + 1) / 2
		parts = append(parts, fmt.Sprintf("score mate %d", mateIn))
	} else {
		parts = append(parts, fmt.Sprintf("score cp %d", info.Score))
	}

	parts = append(parts, fmt.Sprintf("nodes %d", info.Nodes))
	parts = append(parts, fmt.Sprintf("time %d", info.Time.Milliseconds()))

	if info.Time > 0 {
		nps := uint64(float64(info.Nodes) / info.Time.Seconds())
		parts = append(parts, fmt.Sprintf("nps %d", nps))
	}
	if info.HashFull > 0 {
		parts = append(parts, fmt.Sprintf("hashfull %d", info.HashFull))
	}

	if len(info.PV) > 0 {
		validPV := make([]string, 0, len(info.PV))
		testPos := u.position.Copy()
		for _, move := range info.PV {
			legal := testPos.GenerateLegalMoves()
			found := false
			for i := 0; i < legal.Len(); i++ {
				if legal.Get(i) == move {
					found = true
					break
				}
			}
			if !found {
				break
			}
			validPV = append(validPV, move.String())
			testPos.MakeMove(move)
		}
		if len(validPV) > 0 {
			parts = append(parts, "pv "+strings.Join(validPV, " "))
		}
	}

	fmt.Printf("info %s\n", strings.Join(parts, " "))
}

// handleStop requests the current search stop and waits for it to finish.
func (u *UCI) handleStop() {
	if u.searching.Load() {
		u.stopRequested.Store(true)
		u.engine.Stop()
		<-u.searchDone
	}
}

// handleQuit stops any running search and exits.
func (u *UCI) handleQuit() {
	u.handleStop()
	os.Exit(0)
}

// handleSetOption processes "setoption name <name> value <value>".
func (u *UCI) handleSetOption(args []string) {
	var name, value string
	readingName, readingValue := false, false

	for _, arg := range args {
		switch arg {
		case "name":
			readingName, readingValue = true, false
		case "value":
			readingName, readingValue = false, true
		default:
			if readingName {
				if name != "" {
					name += " "
				}
				name += arg
			} else if readingValue {
				if value != "" {
					value += " "
				}
				value += arg
			}
		}
	}

	switch strings.ToLower(name) {
	case "hash":
		sizeMB, err := strconv.Atoi(value)
		if err == nil && sizeMB > 0 {
			u.engine = engine.NewEngine(sizeMB)
		}
	case "contempt":
		c, err := strconv.Atoi(value)
		if err == nil {
			u.engine.SetContempt(c)
		}
	case "debug":
		debugMode = strings.ToLower(value) == "true"
		if debugMode {
			fmt.Fprintf(os.Stderr, "info string debug mode enabled\n")
		}
	}
}

// handleDebug processes "debug on|off", toggling verbose stderr logging.
func (u *UCI) handleDebug(args []string) {
	if len(args) == 0 {
		return
	}
	switch args[0] {
	case "on":
		debugMode = true
		fmt.Fprintf(os.Stderr, "info string debug mode enabled\n")
	case "off":
		debugMode = false
	}
}

// handlePerft runs a perft test from the current position and reports
// node count, elapsed time, and nodes per second.
func (u *UCI) handlePerft(args []string) {
	depth := 5
	if len(args) > 0 {
		depth, _ = strconv.Atoi(args[0])
	}

	start := time.Now()
	nodes := u.engine.Perft(u.position, depth)
	elapsed := time.Since(start)

	fmt.Printf("Nodes: %d\n", nodes)
	fmt.Printf("Time: %v\n", elapsed)
	if elapsed > 0 {
		nps := float64(nodes) / elapsed.Seconds()
		fmt.Printf("NPS: %.0f\n", nps)
	}
}

var (
	lightSquare = lipgloss.NewStyle().Background(lipgloss.Color("230")).Foreground(lipgloss.Color("0"))
	darkSquare  = lipgloss.NewStyle().Background(lipgloss.Color("94")).Foreground(lipgloss.Color("15"))
	coordStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
)

// printBoard renders the "d" debug command's board dump, a padded grid of
// squares colored light/dark with file/rank coordinates.
func (u *UCI) printBoard() {
	var b strings.Builder

	for rank := 7; rank >= 0; rank-- {
		b.WriteString(coordStyle.Render(fmt.Sprintf("%d ", rank+1)))
		for file := 0; file < 8; file++ {
			sq := board.NewSquare(file, rank)
			p := u.position.PieceAt(sq)

			glyph := " . "
			if p != board.NoPiece {
				glyph = fmt.Sprintf(" %c ", pieceGlyph(p))
			}

			style := lightSquare
			if (file+rank)%2 == 0 {
				style = darkSquare
			}
			b.WriteString(style.Render(glyph))
		}
		b.WriteString("\n")
	}
	b.WriteString(coordStyle.Render("   a  b  c  d  e  f  g  h"))
	b.WriteString("\n")

	fmt.Println(b.String())
	fmt.Printf("Fen: %s\n", u.position.ToFEN())
	fmt.Printf("Key: %016X\n", u.position.Hash)
}

func pieceGlyph(p board.Piece) rune {
	glyphs := map[board.PieceType]rune{
		board.Pawn:   'p',
		board.Knight: 'n',
		board.Bishop: 'b',
		board.Rook:   'r',
		board.Queen:  'q',
		board.King:   'k',
	}
	g := glyphs[p.Type()]
	if p.Color() == board.White {
		g = rune(strings.ToUpper(string(g))[0])
	}
	return g
}
