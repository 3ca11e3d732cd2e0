package grasperrors

import "go.viam.com/grasp/logging"

// Advisory logs a non-fatal condition the §7 taxonomy calls Advisory:
// joint-limit violations, degenerate links with no induced motion, a
// stable-contact filter invoked while not in contact. Processing continues
// unconditionally; Advisory never returns an error.
func Advisory(log logging.Logger, format string, args ...interface{}) {
	log.Warnf(format, args...)
}
