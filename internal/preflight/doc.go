// Package preflight provides readiness checks for the external binaries and
// filesystem paths that silencecut depends on.
//
// These checks run in two contexts:
//   - The trim and plan commands call RequireBinaries before any work starts,
//     so a missing ffmpeg fails fast instead of after a long scan.
//   - The CLI "silencecut status" command uses RunAll and ProbeFFmpeg to
//     display a full readiness report.
package preflight
