package main

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/cbodonnell/savestate/pkg/codec"
	"github.com/cbodonnell/savestate/pkg/repositories"
)

func listSlots(ctx context.Context, repository repositories.Repository, w io.Writer) error {
	slots, err := repository.ListSlots(ctx)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tVERSION\tSAVED\tFORMAT")
	for _, s := range slots {
		savedAt := "-"
		if s.SavedAt != 0 {
			savedAt = time.UnixMilli(s.SavedAt).UTC().Format(time.RFC3339)
		}
		fmt.Fprintf(tw, "%d\t%s\t%d\t%s\t%s\n", s.SlotID, s.PrettyName, s.Version, savedAt, s.Format)
	}
	return tw.Flush()
}

// exportSlot decodes a stored slot and writes it in a text format.
func exportSlot(ctx context.Context, repository repositories.Repository, w io.Writer, slotID int, format string) error {
	if format != codec.FormatJSON && format != codec.FormatYAML {
		return fmt.Errorf("unsupported export format %q", format)
	}
	out, err := codec.ForFormat(format)
	if err != nil {
		return err
	}

	record, err := repository.LoadSlot(ctx, slotID)
	if err != nil {
		return err
	}
	in, err := codec.ForFormat(record.Format)
	if err != nil {
		return err
	}
	doc, err := in.Decode(record.Data)
	if err != nil {
		return fmt.Errorf("failed to decode slot %d: %w", slotID, err)
	}

	data, err := out.Encode(doc)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}
