package protocol

// ScrapeStats are the counters of one torrent, in the order of the scraped info hashes.
type ScrapeStats struct {
	Seeders   uint32
	Completed uint32
	Leechers  uint32
}

type ScrapeResponse struct {
	TransactionId TransactionId
	Stats         []ScrapeStats
}

func (r *ScrapeResponse) Action() Action             { return ActionScrape }
func (r *ScrapeResponse) Transaction() TransactionId { return r.TransactionId }

func (r *ScrapeResponse) MarshalBinary() ([]byte, error) {
	return Marshal(SizeOfResponseHeader+SizeOfScrapeStats*len(r.Stats), ResponseHeader{
		Action:        ActionScrape,
		TransactionId: r.TransactionId,
	}, r.Stats)
}

func decodeScrapeResponse(b []byte) (*ScrapeResponse, error) {
	const message = "scrape response"

	c := &cursor{buf: b}
	transactionId, err := c.readResponseHeader(message, MinScrapeResponseLen, ActionScrape)
	if err != nil {
		return nil, err
	}

	r := &ScrapeResponse{
		TransactionId: transactionId,
		Stats:         make([]ScrapeStats, 0, c.remaining()/SizeOfScrapeStats),
	}

	for c.remaining() > 0 {
		var stats ScrapeStats
		for _, field := range []*uint32{&stats.Seeders, &stats.Completed, &stats.Leechers} {
			if *field, err = c.uint32(); err != nil {
				return nil, truncated(message, err)
			}
		}
		r.Stats = append(r.Stats, stats)
	}

	return r, nil
}
