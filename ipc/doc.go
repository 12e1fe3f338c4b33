/*
Package ipc serves dictionary lookups and completions to editor plugins
over a pair of byte streams, normally the process's stdin and stdout.

Messages are consecutive MessagePack maps with no extra framing. Every
request carries an id which the matching response echoes back:

	{"id": "1", "cmd": "lookup", "q": "Haus", "l": 5}
	{"id": "1", "r": [{"s": "Haus {n}", "t": "house", "wc": "noun", "sc": 1000}], "c": 1, "t": 3}

	{"id": "2", "cmd": "complete", "q": "Hau"}
	{"id": "2", "w": ["Haus", "Hausboot"], "c": 2, "t": 1}

	{"id": "3", "cmd": "health"}
	{"id": "3", "status": "ok", "pair": "de-en", "from": "de"}

Failures produce {"id": ..., "error": "...", "status": 400} and the server
keeps reading. A response {"status": "ready"} is sent once on start.
*/
package ipc
