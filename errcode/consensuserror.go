package errcode

import "fmt"

// ConsensusErr enumerates failures in resolving a network's consensus
// parameters, such as a network name that doesn't resolve to a known
// chainparams.Bundle. conf itself reports that case with a plain error.
type ConsensusErr int

const (
	ErrorUnknownNetwork ConsensusErr = ConsensusErrorBase + iota

	ErrorNotExistInConsensusMap
)

var consensusErrorToString = map[ConsensusErr]string{
	ErrorUnknownNetwork: "unrecognized network name",
}

func (e ConsensusErr) String() string {
	if s, ok := consensusErrorToString[e]; ok {
		return s
	}
	return fmt.Sprintf("Unknown code (%d)", e)
}
