// Package assign places trains on platforms with a greedy, score-driven
// interval assignment. Trains are processed in order of effective arrival
// and committed to the feasible platform with the lowest score; a new
// platform is opened when none is free. Assign is a pure function of its
// inputs: it performs no I/O and holds no state between runs.
package assign
