// Copyright (c) 2017 Daniel Oaks <daniel@danieloaks.net>
// released under the ISC license

package main

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"log"
	"net"
	"os"
	"strconv"
	"strings"
	"sync"

	docopt "github.com/docopt/docopt-go"
	"github.com/ergochat/irc-go/ircfmt"
	"github.com/ergochat/irc-go/ircmsg"
	"github.com/ergochat/irc-go/ircreader"
	"github.com/jwalton/go-supportscolor"
	"github.com/muesli/termenv"
	"go.uber.org/zap"

	"github.com/ergochat/ircmark/ansi"
	"github.com/ergochat/ircmark/console"
	"github.com/ergochat/ircmark/lib"
	"github.com/ergochat/ircmark/palette"
	"github.com/ergochat/ircmark/spell"
)

const usage = `ircmark.
ircmark is a telnet-like connection helper for IRC that shows incoming lines
with their formatting (bold, colors, CTCP, links) rendered for the terminal,
and spell checks the messages you type.

Usage:
	ircmark <host> <port> [options]
	ircmark render [options]
	ircmark -h | --help
	ircmark --version

In render mode, raw protocol lines are read from standard input and printed
formatted; nothing is sent anywhere.

With --listen, ircmark waits for an IRC client on the given address, then
connects to the server and relays lines both ways, printing each one.

Sending Escapes:
	To send special characters like colour codes and CTCP messages, ircmark
	supports a few escape characters that get converted before messages are
	sent. These escapes are case-sensitive:

	---------------------------------
	 Name          | Escape   | Raw
	---------------------------------
	 CTCP Escape   | [[CTCP]] | 0x01
	 Bold          | [[B]]    | 0x02
	 Colour        | [[C]]    | 0x03
	 Monospace     | [[M]]    | 0x11
	 Italic        | [[I]]    | 0x1d
	 Strikethrough | [[S]]    | 0x1e
	 Underscore    | [[U]]    | 0x1f
	 Reset         | [[R]]    | 0x0f
	---------------------------------

	Arbitrary bytes can be sent as [[\xNN]]. The escapes can be disabled with
	the --no-controls option.

Local Commands:
	Lines starting with / are handled by ircmark; see /help. Start a line
	with // to send it with a single leading slash.

Spell Checking:
	Misspelled words in the trailing parameter of a typed line are
	underlined. Press TAB after a misspelled word to replace it with a
	suggestion; press TAB again for the next one.

Options:
	--config=<file>      YAML configuration file, reloaded when it changes.
	--listen=<address>   Listen for a client on [host]:<port> and proxy it.
	--tls                Connect using TLS.
	--tls-noverify       Don't verify the provided TLS certificates.
	--origin=<url>       Origin header to send with WebSocket connections.
	--hide=<messages>    Comma-separated list of commands/numerics to not print.
	--no-controls        Don't use the control character escapes.
	-p --nopings         Don't automatically respond to incoming pings.
	-r --raw-incoming    Display incoming lines with raw escapes.
	--transcript=<file>  Log all lines sent and received to a file.
	--no-readline        Don't use line editing, even on a terminal.
	--history=<file>     Keep line editing history in a file.
	--color=<level>      Color level: none, 16, 256, truecolor or auto.
	--no-hyperlinks      Don't mark up links as terminal hyperlinks.
	--no-italics         Don't use ANSI italics.
	--no-spell           Don't spell check typed messages.
	-v --verbose         Log debugging output to stderr.
	-h --help            Show this screen.
	--version            Show version.`

func main() {
	os.Exit(run())
}

func run() int {
	version := "ircmark " + lib.SemVer
	arguments, _ := docopt.Parse(usage, nil, true, version, false)

	config := lib.DefaultConfig()
	if arguments["--config"] != nil {
		var err error
		config, err = lib.LoadConfig(arguments["--config"].(string))
		if err != nil {
			log.Fatalf("Could not load config: %s\n", err.Error())
		}
	}
	if arguments["--color"] != nil && arguments["--color"].(string) != "auto" {
		if _, err := lib.ParseColorLevel(arguments["--color"].(string)); err != nil {
			log.Fatalln(err.Error())
		}
	}

	logger, err := lib.NewLogger(config.Logging, arguments["--verbose"].(bool))
	if err != nil {
		log.Fatalf("Could not start logging: %s\n", err.Error())
	}
	defer logger.Sync()

	if err := ansi.EnableANSI(); err != nil {
		logger.Debug("could not enable ANSI escapes", zap.Error(err))
	}

	s := newSession(arguments, config, logger)
	defer s.Close()

	if config.Filename != "" {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		watcher, err := lib.WatchConfig(ctx, config.Filename, logger, s.apply)
		if err != nil {
			logger.Warn("not watching config file", zap.Error(err))
		} else {
			defer watcher.Close()
		}
	}

	if arguments["render"].(bool) {
		s.render(os.Stdin, os.Stdout)
		return 0
	}

	portstring := arguments["<port>"].(string)
	port, err := strconv.Atoi(portstring)
	if err != nil || port < 1 || 65535 < port {
		log.Fatalln("Port must be a number 1-65535")
	}

	connectionConfig := lib.ConnectionConfig{
		Host: arguments["<host>"].(string),
		Port: port,
		TLS:  arguments["--tls"].(bool) || arguments["--tls-noverify"].(bool),
	}
	if arguments["--tls-noverify"].(bool) {
		connectionConfig.TLSConfig = &tls.Config{
			InsecureSkipVerify: true,
		}
	}
	if arguments["--origin"] != nil {
		connectionConfig.Origin = arguments["--origin"].(string)
	}

	if arguments["--listen"] != nil {
		return s.proxy(arguments["--listen"].(string), connectionConfig)
	}
	return s.connect(connectionConfig)
}

// session holds everything shared by the network reader, the console and
// the config watcher.
type session struct {
	arguments map[string]interface{}
	logger    *zap.Logger

	// guards the display state, which config reloads replace
	sync.Mutex
	palette     *palette.Palette
	renderer    *lib.Renderer
	display     *lib.Display
	hidden      map[string]bool
	rawIncoming bool

	store    *spell.BuntStore
	engine   *spell.Engine
	commands *lib.Commands
	urls     *lib.URLGrabber
}

func newSession(arguments map[string]interface{}, config *lib.Config, logger *zap.Logger) *session {
	s := &session{
		arguments:   arguments,
		logger:      logger,
		palette:     palette.New(),
		rawIncoming: arguments["--raw-incoming"].(bool),
	}
	s.renderer = lib.NewRenderer(s.palette, lib.ColorLevelNone, true)
	s.renderer.Italics = !arguments["--no-italics"].(bool)
	s.display = &lib.Display{Renderer: s.renderer}
	s.urls = lib.NewURLGrabber(lib.DefaultURLLimit)

	store, err := spell.OpenPersonalStore(config.Spell.PersonalDictionary)
	if err != nil {
		// another instance has it; keep this session's words in memory
		logger.Warn("personal dictionary unavailable", zap.String("path", config.Spell.PersonalDictionary), zap.Error(err))
		store, err = spell.OpenPersonalStore("")
		if err != nil {
			log.Fatalf("Could not open personal dictionary: %s\n", err.Error())
		}
	}
	s.store = store
	s.engine = spell.NewEngine(s.spellConfig(config), config.SpellEnvironment(store, logger))
	s.commands = &lib.Commands{
		Spell:   s.engine,
		Palette: s.palette,
		URLs:    s.urls,
	}

	s.apply(config)
	return s
}

func (s *session) Close() {
	s.engine.Close()
	if err := s.store.Close(); err != nil {
		s.logger.Warn("closing personal dictionary", zap.Error(err))
	}
}

func (s *session) spellConfig(config *lib.Config) spell.Config {
	result := config.Spell.Config
	if s.arguments["--no-spell"].(bool) {
		result.Enabled = false
	}
	return result
}

// apply installs a (re)loaded configuration; command-line options still
// take precedence over it.
func (s *session) apply(config *lib.Config) {
	s.Lock()
	defer s.Unlock()

	s.palette.Reset()
	if err := config.ApplyPalette(s.palette); err != nil {
		s.logger.Warn("could not apply palette", zap.Error(err))
	}

	colorSetting := config.Display.Color
	if s.arguments["--color"] != nil {
		colorSetting = s.arguments["--color"].(string)
	}
	s.renderer.Level = detectColorLevel(colorSetting)
	s.renderer.Hyperlinks = config.Display.Hyperlinks && !s.arguments["--no-hyperlinks"].(bool)
	s.renderer.SetFontSize(config.Display.FontSize)
	s.display.TimestampFormat = config.Display.TimestampFormat

	hide := append([]string(nil), config.Display.Hide...)
	if s.arguments["--hide"] != nil {
		hide = append(hide, strings.Split(s.arguments["--hide"].(string), ",")...)
	}
	s.hidden = make(map[string]bool)
	for _, cmd := range hide {
		if 0 < len(cmd) {
			s.hidden[strings.ToUpper(cmd)] = true
		}
	}

	s.commands.PaletteFile = config.Palette.File
	s.engine.SetSearchPaths(config.Spell.DictionaryPaths)
	s.engine.Reconfigure(s.spellConfig(config))
	s.logger.Debug("applied config",
		zap.Stringer("color", s.renderer.Level), zap.Bool("hyperlinks", s.renderer.Hyperlinks))
}

func detectColorLevel(setting string) lib.ColorLevel {
	if setting == "" || setting == "auto" {
		return lib.ColorLevel(supportscolor.Stdout().Level)
	}
	level, err := lib.ParseColorLevel(setting)
	if err != nil {
		return lib.ColorLevelNone
	}
	return level
}

func (s *session) spellColor() termenv.Color {
	s.Lock()
	defer s.Unlock()
	return s.renderer.Color(palette.SlotSpell)
}

// status renders one of ircmark's own notices.
func (s *session) status(text string) string {
	s.Lock()
	defer s.Unlock()
	return s.renderer.Status(text)
}

// format returns the text to show for an incoming line, or false if the
// line is hidden.
func (s *session) format(line string) (string, bool) {
	msg, err := ircmsg.ParseLine(line)
	if err != nil {
		return "** ircmark warning: this next line looks incorrect, we're not formatting it **\n" + line, true
	}

	s.Lock()
	defer s.Unlock()
	if s.hidden[strings.ToUpper(msg.Command)] {
		return "", false
	}
	s.urls.Grab(line)
	if s.rawIncoming {
		return ircfmt.Escape(line), true
	}
	return s.display.Line(line), true
}

// render formats protocol lines from r until EOF.
func (s *session) render(r io.Reader, w io.Writer) {
	var reader ircreader.Reader
	reader.Initialize(r, lib.InitialBufferSize, lib.MaxBufferSize)
	for {
		lineBytes, err := reader.ReadLine()
		if len(lineBytes) != 0 {
			if text, show := s.format(strings.TrimRight(string(lineBytes), "\r\n")); show {
				fmt.Fprintln(w, text)
			}
		}
		if err != nil {
			if !errors.Is(err, io.EOF) {
				s.logger.Error("reading input", zap.Error(err))
			}
			return
		}
	}
}

// connect runs an interactive session and returns the exit status.
func (s *session) connect(config lib.ConnectionConfig) int {
	var transcript *lib.Transcript
	if s.arguments["--transcript"] != nil {
		var err error
		transcript, err = lib.NewTranscript(s.arguments["--transcript"].(string))
		if err != nil {
			fmt.Println("** ircmark could not open transcript:", err.Error())
			return 1
		}
		defer transcript.Close()
	}

	connection, err := lib.NewConnection(config)
	if err != nil {
		fmt.Printf("** ircmark could not connect: %s\n", err.Error())
		return 1
	}
	defer connection.Disconnect()
	s.logger.Info("connected", zap.Stringer("remote", connection.RemoteAddr()))

	var historyFile string
	if s.arguments["--history"] != nil {
		historyFile = s.arguments["--history"].(string)
	}
	con, err := console.NewConsole(console.Options{
		Readline:    !s.arguments["--no-readline"].(bool),
		HistoryFile: historyFile,
		Spell:       s.engine,
		SpellColor:  s.spellColor,
	})
	if err != nil {
		fmt.Println("** ircmark could not start the console:", err.Error())
		return 1
	}
	defer con.Close()

	respondToPings := !s.arguments["--nopings"].(bool)
	go func() {
		for {
			line, err := connection.GetLine()
			if err != nil {
				fmt.Fprintln(con, s.status("** ircmark disconnected: "+err.Error()))
				connection.Disconnect()
				con.Close()
				s.Close()
				os.Exit(0)
			}
			transcript.WriteLine(line, false)

			if text, show := s.format(line); show {
				fmt.Fprintln(con, text)
			}

			if respondToPings {
				if msg, err := ircmsg.ParseLine(line); err == nil && msg.Command == "PING" {
					pongMsg := ircmsg.MakeMessage(nil, "", "PONG", msg.Params...)
					pong, err := pongMsg.Line()
					if err == nil {
						pong = strings.TrimRight(pong, "\r\n")
						transcript.WriteLine(pong, true)
						connection.SendLine(pong)
					}
				}
			}
		}
	}()

	useControlCodeReplacements := !s.arguments["--no-controls"].(bool)
	for {
		line, err := con.Readline()
		if err != nil {
			if !errors.Is(err, io.EOF) {
				fmt.Fprintln(con, "** ircmark error: failed to read new input line:", err.Error())
			}
			return 0
		}
		line = strings.TrimRight(line, "\r\n")

		if lib.IsLocal(line) {
			output, err := s.commands.Run(line)
			if err != nil {
				fmt.Fprintln(con, s.status("** ircmark: "+err.Error()))
			} else {
				fmt.Fprintln(con, output)
			}
			continue
		}
		line = lib.Unescape(line)

		if useControlCodeReplacements {
			line = lib.ReplaceControlCodes(line)
		}

		transcript.WriteLine(line, true)
		err = connection.SendLine(line)
		if err != nil {
			fmt.Fprintln(con, "** ircmark error: failed to send line:", err.Error())
			return 1
		}
	}
}

// proxy waits for a client on address, connects it to the server and shows
// the traffic until either side hangs up.
func (s *session) proxy(address string, config lib.ConnectionConfig) int {
	var transcript *lib.Transcript
	if s.arguments["--transcript"] != nil {
		var err error
		transcript, err = lib.NewTranscript(s.arguments["--transcript"].(string))
		if err != nil {
			fmt.Println("** ircmark could not open transcript:", err.Error())
			return 1
		}
		defer transcript.Close()
	}

	ln, err := net.Listen("tcp", address)
	if err != nil {
		fmt.Println("** ircmark could not open listener:", err.Error())
		fmt.Println("Listener should have the form [host]:<port> like localhost:6667 or :8889")
		return 1
	}
	fmt.Println(s.status("** ircmark listening on " + address))
	fmt.Println(s.status("** ircmark will connect once we have a client connected on the listening port"))

	client, err := lib.AcceptClient(ln)
	if err != nil {
		fmt.Println("** ircmark could not accept incoming connection from listener:", err.Error())
		return 1
	}
	s.logger.Info("client connected", zap.Stringer("remote", client.RemoteAddr()))

	connection, err := lib.NewConnection(config)
	if err != nil {
		client.Disconnect()
		fmt.Printf("** ircmark could not connect: %s\n", err.Error())
		return 1
	}
	s.logger.Info("connected", zap.Stringer("remote", connection.RemoteAddr()))

	// client and server lines must not interleave
	var outputMutex sync.Mutex
	proxy := &lib.Proxy{
		Client:     client,
		Server:     connection,
		Transcript: transcript,
		Show: func(line string, from lib.Direction) {
			text, show := s.format(line)
			if !show {
				return
			}
			outputMutex.Lock()
			defer outputMutex.Unlock()
			fmt.Println(from.Prefix() + text)
		},
	}
	err = proxy.Run()
	fmt.Println(s.status("** ircmark " + err.Error()))
	return 0
}
