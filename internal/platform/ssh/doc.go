// Package ssh provides the SSH communicator used to run installer commands
// and upload files on cluster machines.
//
// Commands run elevated through non-interactive sudo unless the login user
// is root. Output streams to the caller's writers and the remote exit status
// is returned separately from transport errors, so a failing command is not
// confused with an unreachable machine.
package ssh
