// Package efyjlog builds the process's structured loggers: the façade calls
// for "an abstract logger with variants {console, file(fd), null}"
// selected by configuration, replacing the original's process-wide
// out()/err() singletons with an explicit logger threaded through every
// call. Construction is backed by logrus; callers depend only on
// *logrus.Entry/*logrus.Logger, never on a package-level variable.
package efyjlog
