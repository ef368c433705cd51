// Copyright 2025 The WordServe Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package main implements the cadprompt template completion server and its
terminal front ends.

Note: This is a BETA release. APIs and functionality may rapidly change.

cadprompt recognizes fill-in-the-blank command templates while a prompt for a
text-to-CAD service is being typed, such as

	Generate a {shape} with {dimension} {unit} {type}

and offers the options or suggestions for the blank under the cursor. The
match is derived from the full text on every keystroke; nothing is carried
over between edits. Text no template matches is plain free-form input.

# Usage

Start the msgpack IPC server with default settings:

	cadprompt

Try templates interactively, line by line or per keystroke:

	cadprompt cli
	cadprompt tui

Load extra template files and enable debug logs:

	cadprompt tui --templates ./my-templates -d

List the loaded templates or check a template file:

	cadprompt templates list
	cadprompt templates check gears.toml

# Configuration

Runtime configuration is read from a TOML file that is created with defaults
if it doesn't exist:

	[engine]
	max_suggestions = 8
	max_input = 512
	builtin_templates = true

	[templates]
	dir = "templates"
	files = ["~/cad/gears.yaml"]

	[server]
	max_input = 4096
	enable_timing = true

	[cli]
	show_preview = true
	color = true

Relative template paths are resolved against the config file. Without a
configured dir, a "templates" dir next to the config file or the binary is
used when it holds template files.

# Templates

Template files are TOML or YAML, chosen by extension. A template is either a
compact pattern

	[[template]]
	id = "mug"
	pattern = "Make a mug {height:number 50-200} mm tall"

or an explicit list of parts with options, suggestions and validation rules.
Templates are tried in load order: builtin templates first, then configured
files, then the dir, then --templates paths. The first template consistent
with the text wins.

# IPC Protocol

The server communicates via MessagePack over stdin/stdout:

	{"id": "req1", "action": "plan", "i": "Generate a sphere with 5 cm "}

See package server for the message types.
*/
package main

import (
	"os"
)

func main() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
