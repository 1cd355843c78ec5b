// Package channel holds the pure, network-free parts of channel resolution.
//
// # Classification
//
// [Classify] maps a raw string to a [models.ClassifiedInput] using a fixed priority list:
// channel ID, /channel/ URL, @handle, /c/ URL, /user/ URL, any other youtube.com URL (except /watch).
// Channel IDs and handles are reduced to their inner token; URL kinds keep the whole input.
//
// # Extraction
//
// [Extract] runs an ordered list of strategies against fetched page text and returns the first
// identifier that passes [models.IsChannelID]. Strategies overlap on purpose because markup varies
// by locale, experiment bucket, and whether the relay returned the full document:
//
//  1. meta tags (og:url, al:web:url, twitter:url, channelId)
//  2. canonical link
//  3. script-state keys ("channelId", "externalId", browse params, bare channel/ paths)
//  4. navigation endpoints (webCommandMetadata, browseEndpoint)
//  5. the ytInitialData blob, read with gjson
//
// [ExtractHandle] and [ExtractFeed] serve the cheaper @handle shortcuts.
//
// # Playlist URLs
//
// [PlaylistURL] swaps the "UC" prefix for "UU" and embeds the result in the playlist URL template.
package channel
