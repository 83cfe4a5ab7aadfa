/*
 * log.go, part of mdinit.
 *
 * Copyright 2026 The mdinit authors
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

package initcond

import (
	"fmt"
	"log"
	"os"
)

var logger = log.New(os.Stderr, "initcond: ", log.LstdFlags)

//SetLogger replaces the logger used for warnings. A nil l silences them.
func SetLogger(l *log.Logger) {
	if l == nil {
		l = log.New(nopWriter{}, "", 0)
	}
	logger = l
}

type nopWriter struct{}

func (nopWriter) Write(p []byte) (int, error) { return len(p), nil }

//warnings collects the physical-consistency warnings of a run, and logs them as they come.
type warnings []string

func (w *warnings) add(format string, a ...interface{}) {
	msg := fmt.Sprintf(format, a...)
	logger.Printf("WARNING: %s", msg)
	*w = append(*w, msg)
}
