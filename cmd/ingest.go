package cmd

import (
	"io"
	"log"
	"time"

	"github.com/jaffee/commandeer"
	"github.com/spf13/cobra"

	"github.com/stayindex/stayindex/ingest"
)

// IngestMain is wrapped by NewIngestCommand and only exported for testing purposes.
var IngestMain *ingest.Main

// NewIngestCommand returns a new cobra command wrapping IngestMain.
func NewIngestCommand(stdin io.Reader, stdout, stderr io.Writer) *cobra.Command {
	var err error
	IngestMain = ingest.NewMain()
	ingestCommand := &cobra.Command{
		Use:   "ingest",
		Short: "index a listings extract into the properties and hosts indexes",
		Long: `Reads a delimiter-separated listings extract (local file, http(s) URL,
or s3:// object) and upserts property and host documents into the two
indexes under index-root, registering facet labels with each index's
taxonomy store.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			start := time.Now()
			err = IngestMain.Run()
			if err != nil {
				return err
			}
			log.Println("Done: ", time.Since(start))
			return nil
		},
	}
	flags := ingestCommand.Flags()
	err = commandeer.Flags(flags, IngestMain)
	if err != nil {
		panic(err)
	}
	return ingestCommand
}

func init() {
	subcommandFns["ingest"] = NewIngestCommand
}
