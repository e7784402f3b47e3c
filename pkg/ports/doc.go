/*
Package ports defines the interfaces adapters implement to plug into the
Levelance engine.

The decode core itself has no dependencies; ports only cover the optional
infrastructure around it, such as caching decode results across calls.
*/
package ports
