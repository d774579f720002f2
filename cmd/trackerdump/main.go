package main

import (
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/urfave/cli"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"erri120/trackercodec/byteutil"
	"erri120/trackercodec/protocol"
)

func main() {
	if err := newApp(os.Stdin, os.Stdout, os.Stderr).Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", err)
		os.Exit(1)
	}
}

var kinds = map[string]protocol.Action{
	"connect":  protocol.ActionConnect,
	"announce": protocol.ActionAnnounce,
	"scrape":   protocol.ActionScrape,
	"error":    protocol.ActionError,
}

func newApp(stdin io.Reader, stdout, stderr io.Writer) *cli.App {
	app := cli.NewApp()
	app.Name = "trackerdump"
	app.Usage = "decode a captured UDP tracker datagram"
	app.ArgsUsage = "[file]"
	app.Writer = stdout
	app.ErrWriter = stderr
	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:  "kind, k",
			Value: "auto",
			Usage: "message kind: auto, connect, announce, scrape or error",
		},
		cli.BoolFlag{
			Name:  "request, r",
			Usage: "decode a request sent by a client instead of a tracker response",
		},
		cli.BoolFlag{
			Name:  "hex",
			Usage: "input is hex encoded",
		},
		cli.BoolFlag{
			Name:  "debug",
			Usage: "log decoding details to stderr",
		},
	}
	app.Action = func(c *cli.Context) error {
		logger := newLogger(stderr, c.Bool("debug"))
		defer logger.Sync()

		b, err := readInput(c.Args().First(), stdin, c.Bool("hex"))
		if err != nil {
			return err
		}

		action, err := resolveKind(c.String("kind"), b, c.Bool("request"))
		if err != nil {
			return err
		}

		logger.Debug("Decoding datagram",
			zap.Int("bytes", len(b)),
			zap.Stringer("action", action),
			zap.Bool("request", c.Bool("request")),
		)

		if c.Bool("request") {
			return dumpRequest(c.App.Writer, action, b)
		}

		decoder := &protocol.Decoder{Logger: logger}
		return dumpResponse(c.App.Writer, decoder, action, b)
	}
	return app
}

func newLogger(w io.Writer, debug bool) *zap.Logger {
	level := zap.InfoLevel
	if debug {
		level = zap.DebugLevel
	}

	core := zapcore.NewCore(zapcore.NewConsoleEncoder(zap.NewProductionEncoderConfig()), zapcore.AddSync(w), level)
	return zap.New(core).With(zap.String("name", "trackerdump"))
}

func readInput(path string, stdin io.Reader, isHex bool) ([]byte, error) {
	var (
		b   []byte
		err error
	)
	if path == "" || path == "-" {
		b, err = io.ReadAll(stdin)
	} else {
		b, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, err
	}

	if !isHex {
		return b, nil
	}

	decoded, err := hex.DecodeString(strings.Join(strings.Fields(string(b)), ""))
	if err != nil {
		return nil, fmt.Errorf("invalid hex input: %w", err)
	}
	return decoded, nil
}

// resolveKind maps the --kind flag to an action. "auto" reads the action field of the datagram.
func resolveKind(kind string, b []byte, request bool) (protocol.Action, error) {
	if action, ok := kinds[kind]; ok {
		return action, nil
	}

	if kind != "auto" {
		return 0, fmt.Errorf("unknown kind %q", kind)
	}

	if request {
		action, err := byteutil.ReadUint32(b, 8, byteutil.BigEndian)
		if err != nil {
			return 0, fmt.Errorf("datagram too short for a request header: %w", err)
		}
		return protocol.Action(action), nil
	}

	header, err := protocol.PeekHeader(b)
	if err != nil {
		return 0, err
	}
	return header.Action, nil
}

func dumpRequest(w io.Writer, action protocol.Action, b []byte) error {
	switch action {
	case protocol.ActionConnect:
		r, err := protocol.DecodeConnectRequest(b)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "connect request transaction=%#x\n", uint32(r.TransactionId))
	case protocol.ActionAnnounce:
		r, err := protocol.DecodeAnnounceRequest(b)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "announce request connection=%#x transaction=%#x\n", uint64(r.ConnectionId), uint32(r.TransactionId))
		fmt.Fprintf(w, "  info_hash=%s peer_id=%q\n", r.InfoHash, r.PeerId.String())
		fmt.Fprintf(w, "  downloaded=%d left=%d uploaded=%d event=%q\n", r.Downloaded, r.Left, r.Uploaded, r.Event)
		fmt.Fprintf(w, "  ip=%s key=%#x num_want=%d port=%d\n", byteutil.IPv4ToDottedString(r.IPAddress), r.Key, r.NumWant, r.Port)
		if r.URLData != "" {
			fmt.Fprintf(w, "  url_data=%q\n", r.URLData)
		}
	case protocol.ActionScrape:
		r, err := protocol.DecodeScrapeRequest(b)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "scrape request connection=%#x transaction=%#x\n", uint64(r.ConnectionId), uint32(r.TransactionId))
		for _, infoHash := range r.InfoHashes {
			fmt.Fprintf(w, "  info_hash=%s\n", infoHash)
		}
	default:
		return fmt.Errorf("no request decoder for action %s", action)
	}
	return nil
}

func dumpResponse(w io.Writer, decoder *protocol.Decoder, action protocol.Action, b []byte) error {
	r, err := decoder.DecodeResponse(action, b)
	if err != nil {
		var trackerErr *protocol.ErrorResponse
		if !errors.As(err, &trackerErr) {
			return err
		}
		r = trackerErr
	}

	switch r := r.(type) {
	case *protocol.ConnectResponse:
		fmt.Fprintf(w, "connect response transaction=%#x connection=%#x\n", uint32(r.TransactionId), uint64(r.ConnectionId))
	case *protocol.AnnounceResponse:
		fmt.Fprintf(w, "announce response transaction=%#x interval=%d leechers=%d seeders=%d peers=%d skipped=%d\n",
			uint32(r.TransactionId), r.Interval, r.Leechers, r.Seeders, r.Peers().Len(), r.Skipped())
		for _, peer := range r.Peers().Slice() {
			fmt.Fprintf(w, "  %s\n", peer)
		}
	case *protocol.ScrapeResponse:
		fmt.Fprintf(w, "scrape response transaction=%#x torrents=%d\n", uint32(r.TransactionId), len(r.Stats))
		for i, stats := range r.Stats {
			fmt.Fprintf(w, "  %d: seeders=%d completed=%d leechers=%d\n", i, stats.Seeders, stats.Completed, stats.Leechers)
		}
	case *protocol.ErrorResponse:
		fmt.Fprintf(w, "error response transaction=%#x message=%q\n", uint32(r.TransactionId), r.Message)
	}
	return nil
}
