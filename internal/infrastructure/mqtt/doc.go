// Package mqtt provides outbound MQTT connectivity for taskdeck.
//
// This package manages:
//   - Connection to the broker with auto-reconnect
//   - Message publishing with QoS guarantees
//   - Last Will and Testament (LWT) for offline detection
//   - Connection health monitoring
//
// # Architecture
//
// taskdeck publishes task and account lifecycle events so that other
// systems (dashboards, notification services) can react without polling
// the REST API. The service is publish-only: it holds no subscriptions.
//
//	taskdeck → MQTT Broker → subscribers
//
// # Security Considerations
//
//   - TLS is required for production deployments (cfg.Broker.TLS=true)
//   - Credentials are validated against broker ACL
//   - Anonymous access is only for local development
//   - Message payloads are not encrypted beyond TLS transport
//
// # Usage
//
//	client, err := mqtt.Connect(cfg.MQTT)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer client.Close()
//
//	topic := mqtt.Topics{}.TaskEvent("tsk-1a2b3c4d", "created")
//	client.PublishEvent(topic, payload)
package mqtt
