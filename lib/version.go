// Copyright (c) 2026 ircmark contributors
// released under the ISC license

package lib

const SemVer = "0.1.0"
