package core

import (
	"strconv"
	"testing"
)

func benchmarkReplay(b *testing.B, size int, policy ReplayPolicy) {
	h := NewHistory()
	for i := range size {
		// Every message appears twice, mimicking upstream double delivery.
		msg := Message{Sender: "alice", Body: "payload " + strconv.Itoa(i/2), Kind: KindOther}
		h.Append("bench", msg)
	}

	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		for range h.Replay("bench", policy) {
		}
	}
}

func BenchmarkReplayDedup_100(b *testing.B)   { benchmarkReplay(b, 100, ReplayDeduplicated) }
func BenchmarkReplayDedup_1000(b *testing.B)  { benchmarkReplay(b, 1000, ReplayDeduplicated) }
func BenchmarkReplayFull_1000(b *testing.B)   { benchmarkReplay(b, 1000, ReplayFull) }
func BenchmarkReplayDedup_10000(b *testing.B) { benchmarkReplay(b, 10000, ReplayDeduplicated) }
