// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2022 Autonomy Network
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// registry-cli - command line access to a running registryd
//
// results are printed as indented JSON so they can be piped
// into other tools
package main
