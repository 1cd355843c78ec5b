// Package models defines the value types shared by the resolution pipeline.
//
// Nothing here is persisted; every value is produced per resolution attempt:
//   - [InputKind] and [ClassifiedInput] : the classifier's verdict on raw input
//   - [ChannelID] : the canonical "UC" + 22 character channel identifier
//   - [Method] : which lookup path produced an identifier
//   - [Result] : a row of CLI/TUI output (input, channel ID, playlist URL or error)
package models
