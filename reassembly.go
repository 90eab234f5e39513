package mqttengine

import "github.com/octasense/mqttengine/packet"

// reassembleMinCapacity is the smallest buffer the reassembler ever
// allocates, even for a single small fragment.
const reassembleMinCapacity = 1024

// reassembler turns a stream of arbitrarily-chunked bytes into a sequence
// of complete MQTT control packets. It holds at most one partial packet's
// worth of trailing bytes between calls, except while skip is non-zero: an
// oversize packet is never buffered, even across fragments, only counted
// and discarded as its bytes arrive.
//
// feed always reports that it consumed every byte handed to it; there is
// no backpressure mechanism. A packet whose remaining length would put it
// over packet.MaxPacketSize is dropped as soon as that length is known,
// whether or not the packet has fully arrived yet.
type reassembler struct {
	buf  []byte
	skip int
}

// feed appends data to any held partial packet, extracts as many complete
// packets as are now available, and keeps the trailing partial bytes (if
// any) for next time. It returns the decoded packets in wire order, plus a
// count of packets dropped along the way (oversize or malformed), so the
// caller can account for them.
func (r *reassembler) feed(data []byte) ([]packet.Packet, int) {
	if r.skip > 0 {
		if len(data) <= r.skip {
			r.skip -= len(data)
			return nil, 0
		}
		data = data[r.skip:]
		r.skip = 0
	}

	var whole []byte
	if len(r.buf) > 0 {
		whole = append(r.buf, data...)
		r.buf = nil
	} else {
		whole = data
	}

	var out []packet.Packet
	var dropped int
	for len(whole) > 0 {
		need, ok := packet.ExpectedLength(whole)
		if !ok {
			r.hold(whole)
			return out, dropped
		}
		if need > packet.MaxPacketSize {
			dropped++
			if len(whole) >= need {
				whole = whole[need:]
				continue
			}
			// The rest of this packet hasn't arrived yet; discard what's
			// here and skip the remainder as it comes in, rather than
			// buffering up to need bytes of a packet we'll throw away.
			r.skip = need - len(whole)
			return out, dropped
		}
		if len(whole) < need {
			r.hold(whole)
			return out, dropped
		}
		pkt, err := packet.Decode(whole[:need])
		whole = whole[need:]
		if err != nil {
			// Malformed packets are silently discarded; the dispatcher
			// keeps going with whatever follows in the stream.
			dropped++
			continue
		}
		out = append(out, pkt)
	}
	return out, dropped
}

// hold copies the unconsumed tail of whole into r.buf, growing the backing
// array by doubling (floor reassembleMinCapacity, ceiling
// packet.MaxPacketSize) rather than exactly to size, so repeated small
// appends don't reallocate every call.
func (r *reassembler) hold(whole []byte) {
	if len(whole) == 0 {
		r.buf = nil
		return
	}
	if cap(r.buf) >= len(whole) {
		r.buf = r.buf[:len(whole)]
		copy(r.buf, whole)
		return
	}
	newCap := reassembleMinCapacity
	for newCap < len(whole) && newCap < packet.MaxPacketSize {
		newCap *= 2
	}
	if newCap < len(whole) {
		newCap = len(whole)
	}
	buf := make([]byte, len(whole), newCap)
	copy(buf, whole)
	r.buf = buf
}

// reset discards any held partial packet and any pending oversize-packet
// skip, as happens on disconnect.
func (r *reassembler) reset() {
	r.buf = nil
	r.skip = 0
}

func (r *reassembler) heldLen() int {
	return len(r.buf)
}
