package meta

// GO_ROUTINES defines the number of goroutines to use.
const GO_ROUTINES = 8

// EPISODES defines the number of episodes for MCTS.
const EPISODES = 150

// WITH_CUTOFF defines the cutoff value for MCTS.
const WITH_CUTOFF = 100

// MAX_MOVES bounds self-play games.
const MAX_MOVES = 300

// DEFAULT_LEVEL is played when no level is named.
const DEFAULT_LEVEL = "Nine Men's Morris"
