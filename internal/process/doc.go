// Package process terminates the headless browser tree started for PDF
// export. Chrome forks renderer and GPU helpers; killing only the launcher
// PID leaves them running, so the whole group or tree is signalled.
package process
