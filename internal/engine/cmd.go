package engine

import "github.com/neboloop/nayru/internal/pcmsource"

// cmd is a command sent to the text-processor actor.
type cmd struct {
	kind cmdKind
	text string
}

type cmdKind int

const (
	cmdSpeak cmdKind = iota
	cmdStreamChunk
	cmdStreamEnd
	cmdStop
)

// fetchJob is one unit of synthesis work dispatched to the fetcher pool.
type fetchJob struct {
	text  string
	epoch int64
}

// playCmd is a command sent to the playback worker. It is consumed serially
// on the worker's dedicated OS thread.
type playCmd struct {
	kind   playCmdKind
	source *pcmsource.Source
}

type playCmdKind int

const (
	playCmdPlayStream playCmdKind = iota
	playCmdSkip
	playCmdStop
	playCmdPause
	playCmdResume
)
