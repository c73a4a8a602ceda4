package notify

import "salonbook/pkg/config"

// ChannelsFromConfig builds the staff notification channels that cfg
// enables. With nothing configured the booking summary goes to the log.
func ChannelsFromConfig(cfg *config.Config) *ChannelSink {
	sink := NewChannelSink(cfg.Log)
	if cfg.EmailEnabled() {
		sink.Add("email", NewEmailNotifier(cfg))
	}
	if cfg.SMSEnabled() {
		sink.Add("sms", NewSMSNotifier(cfg))
	}
	if sink.Len() == 0 {
		sink.Add("log", NewLogNotifier(cfg.Log))
	}
	return sink
}
