// Package logx configures roundflow's structured logging.
//
// A small wrapper (logx.Logger) on top of zerolog keeps:
//   - Console output readable (short timestamp + short caller)
//   - File output JSON-structured
//   - Level and outputs swappable at runtime through Service.Apply
//
// Logger implements LogError, so any Logger can be handed to a scheduler as
// its diagnostic sink.
package logx
