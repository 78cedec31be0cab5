package app

import (
	"context"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"
)

func (s Service) Inspect(ctx context.Context, req InspectRequest) (InspectResult, error) {
	tarPath := strings.TrimSpace(req.TarPath)
	if tarPath == "" {
		return InspectResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("bundle path is required")
	}
	entries, err := s.Bundler.List(tarPath)
	if err != nil {
		return InspectResult{}, err
	}
	var total int64
	for _, entry := range entries {
		total += entry.Size
	}
	log.Ctx(ctx).Debug().Str("tarball", tarPath).Int("entries", len(entries)).Msg("bundle listed")
	return InspectResult{Entries: entries, TotalSize: total}, nil
}
