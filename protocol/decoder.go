package protocol

import (
	"errors"
	"fmt"

	"go.uber.org/zap"
)

// Decoder decodes tracker responses and logs what it has to drop.
// The zero value is ready to use and logs nothing.
// A Decoder has no mutable state and can be shared between goroutines.
type Decoder struct {
	Logger *zap.Logger
}

var defaultDecoder = &Decoder{}

func (d *Decoder) logger() *zap.Logger {
	if d.Logger == nil {
		return zap.NewNop()
	}
	return d.Logger
}

func (d *Decoder) DecodeConnectResponse(b []byte) (*ConnectResponse, error) {
	r, err := decodeConnectResponse(b)
	if err != nil {
		d.logger().Debug("Unable to decode connect response", zap.Int("bytes", len(b)), zap.Error(err))
		return nil, err
	}
	return r, nil
}

// DecodeAnnounceResponse skips invalid peer records and keeps decoding the rest.
// The skipped records are available through AnnounceResponse.PeerErrors.
func (d *Decoder) DecodeAnnounceResponse(b []byte) (*AnnounceResponse, error) {
	logger := d.logger()

	r, err := decodeAnnounceResponse(b, func(err error) {
		logger.Debug("Skipping invalid peer", zap.Error(err))
	})
	if err != nil {
		logger.Debug("Unable to decode announce response", zap.Int("bytes", len(b)), zap.Error(err))
		return nil, err
	}

	if skipped := r.Skipped(); skipped > 0 {
		logger.Warn("Announce response contained invalid peers",
			zap.Uint32("transactionId", uint32(r.TransactionId)),
			zap.Int("skipped", skipped),
			zap.Int("peers", r.Peers().Len()),
		)
	}

	return r, nil
}

func (d *Decoder) DecodeScrapeResponse(b []byte) (*ScrapeResponse, error) {
	r, err := decodeScrapeResponse(b)
	if err != nil {
		d.logger().Debug("Unable to decode scrape response", zap.Int("bytes", len(b)), zap.Error(err))
		return nil, err
	}
	return r, nil
}

func (d *Decoder) DecodeErrorResponse(b []byte) (*ErrorResponse, error) {
	r, err := decodeErrorResponse(b)
	if err != nil {
		d.logger().Debug("Unable to decode error response", zap.Int("bytes", len(b)), zap.Error(err))
		return nil, err
	}
	return r, nil
}

// DecodeResponse decodes a response to a request of the expected action.
// When the tracker answered with an error the *ErrorResponse is returned as the error.
func (d *Decoder) DecodeResponse(expected Action, b []byte) (Response, error) {
	header, err := PeekHeader(b)
	if err != nil {
		d.logger().Debug("Unable to read response header", zap.Int("bytes", len(b)), zap.Error(err))
		return nil, err
	}

	if header.Action == ActionError && expected != ActionError {
		errorResponse, err := d.DecodeErrorResponse(b)
		if err != nil {
			return nil, err
		}
		d.logger().Info("Tracker returned an error",
			zap.Uint32("transactionId", uint32(errorResponse.TransactionId)),
			zap.String("message", errorResponse.Message),
		)
		return nil, errorResponse
	}

	var r Response
	switch expected {
	case ActionConnect:
		var connect *ConnectResponse
		if connect, err = d.DecodeConnectResponse(b); err == nil {
			r = connect
		}
	case ActionAnnounce:
		var announce *AnnounceResponse
		if announce, err = d.DecodeAnnounceResponse(b); err == nil {
			r = announce
		}
	case ActionScrape:
		var scrape *ScrapeResponse
		if scrape, err = d.DecodeScrapeResponse(b); err == nil {
			r = scrape
		}
	case ActionError:
		var errorResponse *ErrorResponse
		if errorResponse, err = d.DecodeErrorResponse(b); err == nil {
			r = errorResponse
		}
	default:
		err = fmt.Errorf("no decoder for action %s", expected)
	}

	if err != nil {
		return nil, err
	}
	return r, nil
}

func DecodeConnectResponse(b []byte) (*ConnectResponse, error) {
	return defaultDecoder.DecodeConnectResponse(b)
}

func DecodeAnnounceResponse(b []byte) (*AnnounceResponse, error) {
	return defaultDecoder.DecodeAnnounceResponse(b)
}

func DecodeScrapeResponse(b []byte) (*ScrapeResponse, error) {
	return defaultDecoder.DecodeScrapeResponse(b)
}

func DecodeErrorResponse(b []byte) (*ErrorResponse, error) {
	return defaultDecoder.DecodeErrorResponse(b)
}

func DecodeResponse(expected Action, b []byte) (Response, error) {
	return defaultDecoder.DecodeResponse(expected, b)
}

// IsTrackerError reports whether err is an error sent by the tracker.
func IsTrackerError(err error) bool {
	var errorResponse *ErrorResponse
	return errors.As(err, &errorResponse)
}
