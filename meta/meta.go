// meta/meta.go
package meta

import "time"

// GO_ROUTINES defines the number of independent trees searched per move.
const GO_ROUTINES = 1

// BUDGET defines the wall-clock search time per move.
const BUDGET = 500 * time.Millisecond

// SIMULATION_TIMEOUT bounds a single random playout.
const SIMULATION_TIMEOUT = time.Second

// SEATS defines the number of players at the table.
const SEATS = 2

// CARS defines the number of train cars each seat starts with.
const CARS = 20

// MAX_TURNS caps a self-play match. A match reaching it has no winner.
const MAX_TURNS = 300

// GAMES defines the number of games per experiment match-up.
const GAMES = 10
