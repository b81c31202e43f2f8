// Package delay simulates live operating conditions. A Generator derives a
// fresh train snapshot with a few randomly delayed trains, and a Ticker
// emits such snapshots on a fixed cadence. Neither type runs assignments;
// consumers recompute from each snapshot they receive.
package delay
