package cache

import "strings"

// KeySeparator joins the entity prefix and discriminator parts of a key.
const KeySeparator = ":"

// Key builds a cache key from an entity prefix and discriminator parts.
//
// Keys are structured as "<entity>:<discriminator>", for example
// Key("controls", "list", category, page) yields
// "controls:list:{category}:{page}". Keeping every key of an entity under
// one literal prefix is what makes InvalidatePrefix(EntityPrefix("controls"))
// a coherent "evict everything about controls" operation after a mutation.
func Key(parts ...string) string {
	return strings.Join(parts, KeySeparator)
}

// EntityPrefix returns the literal prefix shared by every key of an entity.
func EntityPrefix(entity string) string {
	return entity + KeySeparator
}
